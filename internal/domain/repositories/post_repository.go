package repositories

import (
	"context"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// PostRepository define a interface para persistência de posts
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	// FindByID retorna (nil, nil) quando o post não existe
	FindByID(ctx context.Context, id string) (*entities.Post, error)
	// Update grava título, categoria, descrição e thumbnail.
	// Retorna (false, nil) quando o post não existe mais.
	Update(ctx context.Context, post *entities.Post) (bool, error)
	// Delete retorna (false, nil) quando o post não existe mais
	Delete(ctx context.Context, id string) (bool, error)
	// List retorna posts do mais novo para o mais antigo
	List(ctx context.Context, filters PostFilters) ([]*entities.Post, error)
	// ToggleLike adiciona ou remove a curtida e retorna o total de curtidas
	ToggleLike(ctx context.Context, postID, userID string) (int, error)
}

// PostFilters contém filtros para listagem de posts
type PostFilters struct {
	Category  *string
	CreatorID *string
}
