package store

import (
	"content-gate/app/server/models"
	"context"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	UpdateTheme(ctx context.Context, id uint, theme models.Theme) error
	UpdateLanguage(ctx context.Context, id uint, language models.Language) error
}

type FileStore interface {
	Create(ctx context.Context, file *models.StoredFile) error
	FindByID(ctx context.Context, id uint) (*models.StoredFile, error)
	FindByIDAndOwner(ctx context.Context, id uint, userID uint) (*models.StoredFile, error)
	ListByOwner(ctx context.Context, userID uint) ([]models.StoredFile, error)
	ListAll(ctx context.Context) ([]models.StoredFile, error)
	Delete(ctx context.Context, id uint, userID uint) error
}
