package ports

import (
	"context"
	"io"
)

// Pastas usadas no blob store
const (
	FolderThumbnails = "thumbnails"
	FolderAvatars    = "avatars"
)

// FileUpload é um arquivo recebido do cliente
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadedBlob é o resultado de um upload bem-sucedido
type UploadedBlob struct {
	Identifier string // ex: "thumbnails/sunset-4f1c..."
	Format     string // ex: "png"
}

// BlobStore define a interface para armazenamento de imagens
type BlobStore interface {
	// Upload grava o arquivo dentro de folder e devolve o identificador gerado
	Upload(ctx context.Context, file FileUpload, folder string) (*UploadedBlob, error)
	// Delete remove o arquivo pelo identificador (sem sufixo de formato).
	// Remover um arquivo inexistente não é erro.
	Delete(ctx context.Context, identifier string) error
	// URL monta a URL pública de um BlobID completo
	URL(blobID string) string
}
