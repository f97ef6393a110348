package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"
)

const defaultBaseURL = "http://localhost:8080"

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs).
// Message repete o detail traduzido para clientes que só leem "message".
type ErrorResponse struct {
	*problems.Problem
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// MessageResponse é a resposta simples de sucesso
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]any) ErrorResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	detail := T(c, detailKey, params...)

	problem := problems.NewDetailedProblem(status, detail)
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{
		Problem: problem,
		Message: detail,
	}
}

// Abort escreve o problema com Content-Type application/problem+json e interrompe a cadeia
func Abort(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// ValidationErrorResponseI18n cria uma resposta 400 para falhas de binding
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		"/problems/validation-error",
		"error.validation.title",
		"error.validation.detail",
		400,
	)
	response.Errors = validationErrors
	return response
}

// RouteNotFoundResponseI18n cria a resposta 404 para rotas inexistentes
func RouteNotFoundResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		"/problems/not-found",
		"error.not_found.title",
		"error.route_not_found",
		404,
		map[string]any{"Path": c.Request.URL.Path},
	)
}
