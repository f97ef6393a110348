package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
)

type problemSpec struct {
	status      int
	problemType string
	titleKey    string
}

var problemsByKind = map[domainerrors.Kind]problemSpec{
	domainerrors.KindValidationFailed: {http.StatusUnprocessableEntity, domainerrors.ProblemTypeValidation, "error.validation.title"},
	domainerrors.KindPasswordMismatch: {http.StatusUnprocessableEntity, domainerrors.ProblemTypePassword, "error.password.title"},
	domainerrors.KindNotFound:         {http.StatusNotFound, domainerrors.ProblemTypeNotFound, "error.not_found.title"},
	domainerrors.KindForbidden:        {http.StatusForbidden, domainerrors.ProblemTypeForbidden, "error.forbidden.title"},
	domainerrors.KindConflict:         {http.StatusConflict, domainerrors.ProblemTypeConflict, "error.conflict.title"},
	domainerrors.KindUnauthorized:     {http.StatusUnauthorized, domainerrors.ProblemTypeUnauthorized, "error.unauthorized.title"},
	domainerrors.KindUploadFailed:     {http.StatusBadGateway, domainerrors.ProblemTypeUpstream, "error.upstream.title"},
	domainerrors.KindPersistFailed:    {http.StatusInternalServerError, domainerrors.ProblemTypeInternal, "error.internal.title"},
	domainerrors.KindInternal:         {http.StatusInternalServerError, domainerrors.ProblemTypeInternal, "error.internal.title"},
}

// parâmetros padrão das mensagens que citam limites
var defaultParams = map[error]map[string]any{
	domainerrors.ErrDescriptionTooShort: {"Min": entities.MinDescriptionLength},
	domainerrors.ErrPasswordTooShort:    {"Min": entities.MinPasswordLength},
}

// StatusFor retorna o status HTTP de um erro de domínio
func StatusFor(err error) int {
	return problemsByKind[domainerrors.KindOf(err)].status
}

// ErrorResponseFor traduz um erro de domínio em problema RFC 7807.
// Erros sem código conhecido viram 500 com mensagem genérica.
func ErrorResponseFor(c *gin.Context, err error, params ...map[string]any) ErrorResponse {
	spec := problemsByKind[domainerrors.KindOf(err)]

	code := domainerrors.Code(err)
	if code == nil {
		return NewErrorResponseI18n(c, spec.problemType, spec.titleKey, "error.internal.detail", spec.status)
	}

	merged := map[string]any{}
	for k, v := range defaultParams[code] {
		merged[k] = v
	}
	for _, p := range params {
		for k, v := range p {
			merged[k] = v
		}
	}

	return NewErrorResponseI18n(c, spec.problemType, spec.titleKey, code.Error(), spec.status, merged)
}

// AbortWithError escreve o problema correspondente ao erro
func AbortWithError(c *gin.Context, err error, params ...map[string]any) {
	Abort(c, ErrorResponseFor(c, err, params...))
}

// IsServerError indica falhas que merecem log de erro (5xx)
func IsServerError(err error) bool {
	return StatusFor(err) >= http.StatusInternalServerError
}
