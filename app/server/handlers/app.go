package handlers

import (
	"content-gate/app/server/services/account"
	"content-gate/app/server/services/content"
	"content-gate/app/server/services/files"
	"content-gate/app/server/services/preference"
	"go.uber.org/zap"
)

type App struct {
	l        *zap.Logger         // 日志
	accounts *account.Service    // 注册与登录
	contents *content.Service    // 个性化内容
	prefs    *preference.Service // 偏好设置
	files    *files.Manager      // PDF 文件
	secure   bool                // cookie 是否带 Secure
}

func NewApp(l *zap.Logger, accounts *account.Service, contents *content.Service, prefs *preference.Service, fm *files.Manager, secureCookie bool) *App {
	return &App{
		l:        l,
		accounts: accounts,
		contents: contents,
		prefs:    prefs,
		files:    fm,
		secure:   secureCookie,
	}
}
