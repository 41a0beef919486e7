package handlers

import (
	"content-gate/app/server/errs"
	"content-gate/app/server/response"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, response.Error(http.StatusText(statusCode), nil))
}

// fail 按错误类型选择状态码，未知错误只记录日志，不把细节返回给客户端
func (a *App) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return c.JSON(http.StatusBadRequest, response.Error(validationMessage(err), nil))
	case errors.Is(err, errs.ErrUnauthorized):
		return a.er(c, http.StatusUnauthorized)
	case errors.Is(err, errs.ErrNotFound):
		return a.er(c, http.StatusNotFound)
	case errors.Is(err, errs.ErrConflict):
		return a.er(c, http.StatusConflict)
	default:
		a.l.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return a.er(c, http.StatusInternalServerError)
	}
}

// validationMessage 去掉结尾的错误类型，只保留给用户看的部分
func validationMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+errs.ErrValidation.Error())
}
