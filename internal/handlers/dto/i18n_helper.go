package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/handlers/middleware"
	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
)

// T traduz uma chave no idioma detectado para a requisição.
// Sem o middleware de i18n, devolve a própria chave.
func T(c *gin.Context, key string, params ...map[string]any) string {
	service, ok := i18nService(c)
	if !ok {
		return key
	}

	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	if lang := c.GetString(middleware.LanguageContextKey); lang != "" {
		return lang
	}
	if service, ok := i18nService(c); ok {
		return service.GetDefaultLanguage()
	}
	return "en"
}

func i18nService(c *gin.Context) (*i18n.Service, bool) {
	v, exists := c.Get(middleware.I18nServiceContextKey)
	if !exists {
		return nil, false
	}
	service, ok := v.(*i18n.Service)
	return service, ok
}
