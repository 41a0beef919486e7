package handlers

import (
	"content-gate/app/server/constants"
	"content-gate/app/server/identity"
	"content-gate/app/server/middlewares"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"strconv"
)

type RouteOptions struct {
	UploadMaxSize int64   // 上传大小上限，请求体限制在此基础上加上表单开销
	AuthRateLimit float64 // 每个 IP 每秒允许的注册和登录次数， 0 表示不限制
}

// RegisterHandlers 注册所有 API 路由，每个请求先经过身份中间件
func RegisterHandlers(e *echo.Echo, a *App, resolver *identity.Resolver, opts RouteOptions) {
	api := e.Group("/api", middlewares.Identity(resolver))

	api.GET("/healthcheck", a.HealthCheck)

	// 账户
	var authMiddlewares []echo.MiddlewareFunc
	if opts.AuthRateLimit > 0 {
		authMiddlewares = append(authMiddlewares, middleware.RateLimiter(
			middleware.NewRateLimiterMemoryStore(rate.Limit(opts.AuthRateLimit)),
		))
	}
	api.POST("/register", a.AuthRegister, authMiddlewares...)
	api.POST("/login", a.AuthLogin, authMiddlewares...)
	api.POST("/logout", a.AuthLogout)

	// 个性化内容与偏好
	api.GET("/content", a.ContentGet)
	api.POST("/theme", a.ThemeSet)
	api.POST("/lang", a.LanguageSet)

	// PDF 文件
	api.POST("/upload", a.PdfUpload, middleware.BodyLimit(bodyLimit(opts.UploadMaxSize)))
	api.GET("/pdf", a.PdfList)
	api.GET("/pdf/:id", a.PdfDownload)
	api.DELETE("/pdf/:id", a.PdfDelete)
	api.DELETE("/delete-pdf/:id", a.PdfDelete)
}

func bodyLimit(uploadMaxSize int64) string {
	if uploadMaxSize <= 0 {
		uploadMaxSize = constants.UploadMaxSizeDefault
	}
	return strconv.FormatInt(uploadMaxSize+constants.UploadFormOverhead, 10) + "B"
}
