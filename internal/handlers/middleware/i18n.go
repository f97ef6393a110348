package middleware

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR
// 2. Accept-Language, respeitando os pesos q
// 3. Idioma padrão
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if queryLang := c.Query("lang"); queryLang != "" && m.i18nService.IsLanguageSupported(queryLang) {
			lang = queryLang
		}

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

type weightedLanguage struct {
	tag string
	q   float64
}

// parseAcceptLanguage escolhe o idioma suportado de maior peso.
// Exemplo: "en;q=0.5,pt-BR;q=0.9" -> "pt-BR"
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if acceptLang == "" {
		return ""
	}

	var candidates []weightedLanguage
	for _, part := range strings.Split(acceptLang, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil || parsed <= 0 {
				continue
			}
			q = parsed
		}
		candidates = append(candidates, weightedLanguage{tag: tag, q: q})
	}

	// estável: empate mantém a ordem do header
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].q > candidates[j].q })

	for _, cand := range candidates {
		if m.i18nService.IsLanguageSupported(cand.tag) {
			return cand.tag
		}

		// pt-BR -> pt
		if base, _, found := strings.Cut(cand.tag, "-"); found && m.i18nService.IsLanguageSupported(base) {
			return base
		}

		// pt -> pt-BR
		if match := m.regionalVariant(cand.tag); match != "" {
			return match
		}
	}

	return ""
}

func (m *I18nMiddleware) regionalVariant(base string) string {
	for _, lang := range m.i18nService.GetSupportedLanguages() {
		if strings.HasPrefix(strings.ToLower(lang), strings.ToLower(base)+"-") {
			return lang
		}
	}
	return ""
}
