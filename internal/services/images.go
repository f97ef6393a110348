package services

import (
	"context"
	"errors"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

var errEmptyUploadResult = errors.New("blob store returned no identifier")

// checkImage valida presença e tamanho de uma imagem enviada
func checkImage(file *ports.FileUpload, maxSize int64) error {
	if file == nil || file.Content == nil {
		return domainerrors.ErrMissingImage
	}
	if file.Size > maxSize {
		return domainerrors.ErrImageTooLarge
	}
	return nil
}

// uploadImage envia a imagem ao blob store e deriva o BlobID
func uploadImage(ctx context.Context, store ports.BlobStore, file ports.FileUpload, folder string) (valueobjects.BlobID, error) {
	uploaded, err := store.Upload(ctx, file, folder)
	if err != nil {
		return valueobjects.BlobID{}, domainerrors.Wrap(domainerrors.ErrUploadFailed, err)
	}
	if uploaded == nil {
		return valueobjects.BlobID{}, domainerrors.Wrap(domainerrors.ErrUploadFailed, errEmptyUploadResult)
	}

	id, err := valueobjects.NewBlobID(uploaded.Identifier, uploaded.Format)
	if err != nil {
		return valueobjects.BlobID{}, domainerrors.Wrap(domainerrors.ErrUploadFailed, err)
	}

	return id, nil
}
