package valueobjects

import (
	"errors"
	"strings"
)

var (
	ErrEmptyBlobIdentifier = errors.New("blob identifier is empty")
)

// BlobID identifica um arquivo no blob store no formato "<identifier>.<format>"
type BlobID struct {
	value string
}

// NewBlobID monta o BlobID a partir do identificador e do formato devolvidos pelo blob store
func NewBlobID(identifier, format string) (BlobID, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return BlobID{}, ErrEmptyBlobIdentifier
	}

	format = strings.TrimPrefix(strings.TrimSpace(format), ".")
	if format == "" {
		return BlobID{value: identifier}, nil
	}

	return BlobID{value: identifier + "." + format}, nil
}

// ParseBlobID reconstrói um BlobID já persistido (sem validação)
func ParseBlobID(raw string) BlobID {
	return BlobID{value: raw}
}

// String retorna o valor completo, com o sufixo de formato
func (b BlobID) String() string {
	return b.value
}

// Key retorna o identificador sem o sufixo de formato.
// É a chave usada para remover o arquivo do blob store.
func (b BlobID) Key() string {
	idx := strings.LastIndex(b.value, ".")
	if idx <= strings.LastIndex(b.value, "/") {
		return b.value
	}
	return b.value[:idx]
}

// IsZero indica ausência de arquivo
func (b BlobID) IsZero() bool {
	return b.value == ""
}

// Ptr retorna nil para BlobID vazio, útil para colunas opcionais
func (b BlobID) Ptr() *string {
	if b.IsZero() {
		return nil
	}
	v := b.value
	return &v
}
