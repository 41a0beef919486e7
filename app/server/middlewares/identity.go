package middlewares

import (
	"content-gate/app/server/constants"
	"content-gate/app/server/identity"
	"content-gate/app/server/models"
	"github.com/labstack/echo/v4"
)

const contextKeyIdentity = "identity"

// Identity 从 cookie 解析身份并放入 context ，解析失败时为匿名，不会拒绝请求
func Identity(r *identity.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := r.Resolve(
				cookieValue(c, constants.CookieUserToken),
				cookieValue(c, constants.CookieTheme),
				cookieValue(c, constants.CookieLanguage),
			)

			// 设置 context
			c.Set(contextKeyIdentity, ident)

			// 继续处理
			return next(c)
		}
	}
}

// IdentityFrom 取出中间件设置的身份，没有经过中间件时为默认匿名身份
func IdentityFrom(c echo.Context) identity.Identity {
	if ident, ok := c.Get(contextKeyIdentity).(identity.Identity); ok {
		return ident
	}

	return identity.Identity{
		UserID:   identity.AnonymousID,
		Theme:    models.DefaultTheme,
		Language: models.DefaultLanguage,
	}
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
