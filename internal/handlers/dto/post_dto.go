package dto

import (
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// PostForm representa os campos multipart de criação e edição.
// A imagem vem no campo "thumbnail".
type PostForm struct {
	Title       string `form:"title" binding:"max=200"`
	Category    string `form:"category" binding:"max=50"`
	Description string `form:"description" binding:"max=20000"`
}

// PostResponse representa a resposta de um post
type PostResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Thumbnail    string    `json:"thumbnail"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Creator      string    `json:"creator"`
	Likes        []string  `json:"likes"`
	LikeCount    int       `json:"like_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LikeResponse é devolvida ao curtir/descurtir
type LikeResponse struct {
	PostID string `json:"post_id"`
	Likes  int    `json:"likes"`
}

// CategoriesResponse lista as categorias aceitas
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ToPostResponse converte uma entidade Post; url monta a URL pública da thumbnail
func ToPostResponse(post *entities.Post, url func(string) string) PostResponse {
	likes := post.Likes
	if likes == nil {
		likes = []string{}
	}

	return PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Category:     post.Category.String(),
		Description:  post.Description,
		Thumbnail:    post.Thumbnail.String(),
		ThumbnailURL: url(post.Thumbnail.String()),
		Creator:      post.Creator,
		Likes:        likes,
		LikeCount:    post.LikeCount(),
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

// ToPostResponses converte uma lista de posts (nunca nil)
func ToPostResponses(posts []*entities.Post, url func(string) string) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = ToPostResponse(post, url)
	}
	return responses
}

// NewCategoriesResponse lista as categorias na ordem de exibição
func NewCategoriesResponse() CategoriesResponse {
	names := make([]string, len(entities.Categories))
	for i, c := range entities.Categories {
		names[i] = c.String()
	}
	return CategoriesResponse{Categories: names}
}
