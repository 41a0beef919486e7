package handlers

import (
	"content-gate/app/server/constants"
	"content-gate/app/server/errs"
	"content-gate/app/server/middlewares"
	"content-gate/app/server/models"
	"content-gate/app/server/response"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

type themeRequest struct {
	Theme string `json:"theme" form:"theme"`
}

type languageRequest struct {
	Language string `json:"lang" form:"lang"`
}

type allowedValues[T any] struct {
	Allowed []T `json:"allowed"`
}

func (a *App) ThemeSet(c echo.Context) error {
	rctx := c.Request().Context()
	ident := middlewares.IdentityFrom(c)

	// 绑定请求体
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	theme := models.Theme(req.Theme)
	if err := a.prefs.SetTheme(rctx, ident.UserID, theme); err != nil {
		if errors.Is(err, errs.ErrValidation) {
			return c.JSON(http.StatusUnprocessableEntity, response.Error("invalid theme", &allowedValues[models.Theme]{
				Allowed: models.Themes,
			}))
		}
		return a.fail(c, err)
	}

	// 只有保存成功才更新 cookie
	a.setPreferenceCookie(c, constants.CookieTheme, string(theme))

	return c.JSON(http.StatusOK, response.Success(&themeRequest{Theme: req.Theme}, "theme updated"))
}

func (a *App) LanguageSet(c echo.Context) error {
	rctx := c.Request().Context()
	ident := middlewares.IdentityFrom(c)

	// 绑定请求体
	var req languageRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	language := models.Language(req.Language)
	if err := a.prefs.SetLanguage(rctx, ident.UserID, language); err != nil {
		if errors.Is(err, errs.ErrValidation) {
			return c.JSON(http.StatusUnprocessableEntity, response.Error("invalid language", &allowedValues[models.Language]{
				Allowed: models.Languages,
			}))
		}
		return a.fail(c, err)
	}

	a.setPreferenceCookie(c, constants.CookieLanguage, string(language))

	return c.JSON(http.StatusOK, response.Success(&languageRequest{Language: req.Language}, "language updated"))
}
