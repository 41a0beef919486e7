// Package storetest provides in-memory user and file stores for tests.
package storetest

import (
	"content-gate/app/server/errs"
	"content-gate/app/server/models"
	"content-gate/app/server/store"
	"context"
	"sort"
	"sync"
	"time"
)

var (
	_ store.UserStore = (*Users)(nil)
	_ store.FileStore = (*Files)(nil)
)

type Users struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.User

	// UpdateErr 非空时所有更新都返回它
	UpdateErr error
}

func NewUsers() *Users {
	return &Users{nextID: 1, rows: map[uint]models.User{}}
}

func (m *Users) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Login == user.Login {
			return errs.ErrConflict
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.rows[user.ID] = *user
	return nil
}

func (m *Users) FindByLogin(_ context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *Users) FindByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		return &u, nil
	}
	return nil, errs.ErrNotFound
}

func (m *Users) UpdateTheme(_ context.Context, id uint, theme models.Theme) error {
	return m.update(id, func(u *models.User) { u.Theme = theme })
}

func (m *Users) UpdateLanguage(_ context.Context, id uint, language models.Language) error {
	return m.update(id, func(u *models.User) { u.Language = language })
}

func (m *Users) update(id uint, fn func(u *models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	u, ok := m.rows[id]
	if !ok {
		return errs.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	m.rows[id] = u
	return nil
}

type Files struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.StoredFile

	// CreateErr / DeleteErr 非空时对应操作返回它
	CreateErr error
	DeleteErr error
}

func NewFiles() *Files {
	return &Files{nextID: 1, rows: map[uint]models.StoredFile{}}
}

func (m *Files) Create(_ context.Context, file *models.StoredFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	file.ID = m.nextID
	m.nextID++
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	m.rows[file.ID] = *file
	return nil
}

func (m *Files) FindByID(_ context.Context, id uint) (*models.StoredFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.rows[id]; ok {
		return &f, nil
	}
	return nil, errs.ErrNotFound
}

func (m *Files) FindByIDAndOwner(_ context.Context, id uint, userID uint) (*models.StoredFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.rows[id]; ok && f.UserID == userID {
		return &f, nil
	}
	return nil, errs.ErrNotFound
}

// ListByOwner 新的在前，同一时间按 id 倒序
func (m *Files) ListByOwner(_ context.Context, userID uint) ([]models.StoredFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StoredFile
	for _, f := range m.rows {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Files) ListAll(_ context.Context) ([]models.StoredFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.StoredFile, 0, len(m.rows))
	for _, f := range m.rows {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Files) Delete(_ context.Context, id uint, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if f, ok := m.rows[id]; !ok || f.UserID != userID {
		return errs.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// Len 当前记录数
func (m *Files) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
