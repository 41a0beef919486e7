package handlers

import (
	"content-gate/app/server/constants"
	"content-gate/app/server/models"
	"content-gate/app/server/response"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

type credentials struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type userInfo struct {
	ID       uint            `json:"id"`
	Login    string          `json:"login,omitempty"`
	Theme    models.Theme    `json:"theme"`
	Language models.Language `json:"lang"`
}

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req credentials
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	user, err := a.accounts.Register(rctx, req.Login, req.Password)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusCreated, response.Success(&userInfo{
		ID:       user.ID,
		Login:    user.Login,
		Theme:    user.Theme,
		Language: user.Language,
	}, "registered"))
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req credentials
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	session, err := a.accounts.Login(rctx, req.Login, req.Password)
	if err != nil {
		return a.fail(c, err)
	}

	// 身份凭据和偏好都交给客户端保存
	a.setCookie(c, constants.CookieUserToken, session.Token, session.Expires, true)
	a.setPreferenceCookie(c, constants.CookieTheme, string(session.Theme))
	a.setPreferenceCookie(c, constants.CookieLanguage, string(session.Language))

	return c.JSON(http.StatusOK, response.Success(&userInfo{
		ID:       session.UserID,
		Theme:    session.Theme,
		Language: session.Language,
	}, "logged in"))
}

func (a *App) AuthLogout(c echo.Context) error {
	a.clearCookie(c, constants.CookieUserToken)
	a.clearCookie(c, constants.CookieTheme)
	a.clearCookie(c, constants.CookieLanguage)

	return c.JSON(http.StatusOK, response.Success(nil, "logged out"))
}
