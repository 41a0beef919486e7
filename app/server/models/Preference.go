package models

type Theme string

const (
	ThemeLight      Theme = "light"
	ThemeDark       Theme = "dark"
	ThemeColorblind Theme = "colorblind"
)

// Themes 可选的主题，顺序用于错误提示
var Themes = []Theme{ThemeLight, ThemeDark, ThemeColorblind}

func (t Theme) Valid() bool {
	for _, v := range Themes {
		if t == v {
			return true
		}
	}
	return false
}

type Language string

const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
	LanguageES Language = "es"
	LanguageFR Language = "fr"
	LanguageDE Language = "de"
)

var Languages = []Language{LanguageRU, LanguageEN, LanguageES, LanguageFR, LanguageDE}

func (l Language) Valid() bool {
	for _, v := range Languages {
		if l == v {
			return true
		}
	}
	return false
}

// 新用户和无法识别的值使用的默认偏好
const (
	DefaultTheme    = ThemeLight
	DefaultLanguage = LanguageRU
)
