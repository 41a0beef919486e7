// Package identity recovers who is asking from request-carried credentials.
// It keeps no server-side session state.
package identity

import (
	"content-gate/app/server/jwt"
	"content-gate/app/server/models"
)

// AnonymousID 无法识别身份时使用的用户 ID
const AnonymousID uint = 0

// Identity 是客户端 cookie 中的三元组。 Theme 和 Language 原样保留，
// 内容服务生成缓存 key 前会把未知的值换成默认值 light / ru (content.Normalize)。
type Identity struct {
	UserID   uint
	Theme    models.Theme
	Language models.Language
}

func (i Identity) Authenticated() bool {
	return i.UserID > AnonymousID
}

type Resolver struct {
	jwt *jwt.JWT
}

func NewResolver(j *jwt.JWT) *Resolver {
	return &Resolver{jwt: j}
}

// Resolve 从凭据和两个偏好值恢复身份。
// 凭据缺失、格式错误、过期或签名不对都视为匿名，不会返回错误。
func (r *Resolver) Resolve(token string, theme string, language string) Identity {
	ident := Identity{
		UserID:   AnonymousID,
		Theme:    models.Theme(theme),
		Language: models.Language(language),
	}

	// 偏好 cookie 缺失时按默认值
	if ident.Theme == "" {
		ident.Theme = models.DefaultTheme
	}
	if ident.Language == "" {
		ident.Language = models.DefaultLanguage
	}

	if token == "" {
		return ident
	}

	if user, err := r.jwt.ParseUser(token); err == nil {
		ident.UserID = user.ID
	}

	return ident
}
