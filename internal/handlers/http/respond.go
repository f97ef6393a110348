package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/handlers/middleware"
)

// fail registra falhas 5xx e escreve o problema RFC 7807
func fail(c *gin.Context, logger ports.Logger, err error, params ...map[string]any) {
	if dto.IsServerError(err) {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", dto.StatusFor(err),
			"error", err,
		)
	}
	dto.AbortWithError(c, err, params...)
}

// identity devolve o usuário autenticado; só é chamado atrás do RequireAuth
func identity(c *gin.Context) ports.Identity {
	id, _ := middleware.CurrentIdentity(c)
	return id
}

// formFile abre o arquivo multipart do campo informado.
// Campo ausente devolve (nil, nil); o chamador fecha o arquivo.
func formFile(c *gin.Context, field string) (*ports.FileUpload, multipart.File, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	return &ports.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, file, nil
}

func closeFile(f multipart.File) {
	if f != nil {
		_ = f.Close()
	}
}
