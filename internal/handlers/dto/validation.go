package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators faz o validator reportar os nomes de campo do JSON/form
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
}

// BindingErrorResponse converte um erro de ShouldBind em problema 400
func BindingErrorResponse(c *gin.Context, err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewErrorResponseI18n(c, "/problems/bad-request", "error.bad_request.title", "error.validation.detail", 400)
	}

	fields := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, ValidationError{
			Field:   fe.Field(),
			Message: T(c, messageKey(fe.Tag()), map[string]any{"Field": fe.Field(), "Param": fe.Param()}),
			Tag:     fe.Tag(),
		})
	}

	return ValidationErrorResponseI18n(c, fields)
}

func messageKey(tag string) string {
	switch tag {
	case "required", "email", "min", "max", "eqfield":
		return "validation." + tag
	default:
		return "validation.invalid"
	}
}
