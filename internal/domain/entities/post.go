package entities

import (
	"time"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

// Limites de negócio para posts
const (
	MaxThumbnailSize     = 2_000_000 // bytes
	MinDescriptionLength = 12
)

// Post representa uma publicação do blog
type Post struct {
	ID          string
	Title       string
	Category    Category
	Description string
	Thumbnail   valueobjects.BlobID
	Creator     string   // ID do autor, imutável após a criação
	Likes       []string // IDs de usuários, sem repetição
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy verifica se o usuário é o autor do post
func (p *Post) IsOwnedBy(userID string) bool {
	return p.Creator != "" && p.Creator == userID
}

// IsLikedBy verifica se o usuário curtiu o post
func (p *Post) IsLikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// LikeCount retorna o número de curtidas
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// Validate confere as invariantes de um post pronto para ser gravado
func (p *Post) Validate() error {
	if p.Title == "" || p.Description == "" {
		return domainerrors.ErrMissingFields
	}
	if !p.Category.IsValid() {
		return domainerrors.ErrInvalidCategory
	}
	if p.Thumbnail.IsZero() {
		return domainerrors.ErrMissingImage
	}
	if p.Creator == "" {
		return domainerrors.ErrUnauthorized
	}
	return nil
}
