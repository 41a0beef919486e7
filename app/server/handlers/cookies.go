package handlers

import (
	"content-gate/app/server/constants"
	"github.com/labstack/echo/v4"
	"net/http"
	"time"
)

func (a *App) setCookie(c echo.Context, name string, value string, expires time.Time, httpOnly bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.CookiePath,
		Expires:  expires,
		HttpOnly: httpOnly,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *App) clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     constants.CookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// 偏好 cookie 前端需要读取，不设置 HttpOnly
func (a *App) setPreferenceCookie(c echo.Context, name string, value string) {
	a.setCookie(c, name, value, time.Now().Add(constants.PreferenceCookieDuration), false)
}
