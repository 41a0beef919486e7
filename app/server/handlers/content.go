package handlers

import (
	"content-gate/app/server/middlewares"
	"github.com/labstack/echo/v4"
	"net/http"
)

// ContentGet 返回的是缓存中的原始字节，不再重新编码
func (a *App) ContentGet(c echo.Context) error {
	body, err := a.contents.Get(c.Request().Context(), middlewares.IdentityFrom(c))
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSONBlob(http.StatusOK, body)
}
