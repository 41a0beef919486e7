package constants

import "time"

const (
	AuthTokenDuration = 24 * time.Hour
	DBDefaultTimeout  = 3 * time.Second

	AuthRateLimitDefault = 5.0 // 每个 IP 每秒
)

// 客户端持有的身份与偏好 cookie
const (
	CookieUserToken = "uid"
	CookieTheme     = "theme"
	CookieLanguage  = "lang"
	CookiePath      = "/"

	PreferenceCookieDuration = 365 * 24 * time.Hour
)

// 注册时的长度限制
const (
	LoginMinLength    = 3
	LoginMaxLength    = 40
	PasswordMinLength = 4
	PasswordMaxLength = 80
)
