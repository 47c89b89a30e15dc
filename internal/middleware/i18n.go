// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minicart/minicart-backend/internal/i18n"
)

const defaultLang = "en"

// I18nMiddleware picks the response language from Accept-Language. Traditional
// Chinese tags map to zh_TW; anything without a loaded catalog falls back to English.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := defaultLang

		// Handle cases like "zh-TW,zh;q=0.9,en;q=0.8"
		if header := c.GetHeader("Accept-Language"); header != "" {
			first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			lang = resolveLang(first)
		}

		c.Set("lang", lang)
		c.Next()
	}
}

func resolveLang(tag string) string {
	candidate := strings.ToLower(strings.ReplaceAll(tag, "_", "-"))
	switch candidate {
	case "zh-tw", "zh-hant", "zh-hk":
		candidate = "zh_TW"
	}

	for _, supported := range i18n.GetSupportedLanguages() {
		if supported == candidate {
			return supported
		}
	}
	return defaultLang
}
