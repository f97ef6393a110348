package dto

import (
	"time"

	"github.com/rafabene/blog-backend/internal/domain/entities"
)

// RegisterRequest representa a requisição de cadastro.
// Obrigatoriedade e tamanho mínimo da senha são regras do UserService.
type RegisterRequest struct {
	Name      string `json:"name" binding:"max=100"`
	Email     string `json:"email" binding:"max=254"`
	Password  string `json:"password" binding:"max=72"`
	Password2 string `json:"password2" binding:"max=72"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"max=254"`
	Password string `json:"password" binding:"max=72"`
}

// EditUserRequest representa a requisição de edição do perfil
type EditUserRequest struct {
	Name                  string `json:"name" binding:"max=100"`
	Email                 string `json:"email" binding:"max=254"`
	CurrentPassword       string `json:"currentPassword" binding:"max=72"`
	NewPassword           string `json:"newPassword" binding:"max=72"`
	NewConfirmNewPassword string `json:"newConfirmNewPassword" binding:"max=72"`
}

// ListUsersQuery representa a paginação de GET /users
type ListUsersQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// UserResponse representa a resposta de um usuário (sem hash de senha)
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Posts     int       `json:"posts"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse é devolvida no login
type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// ToUserResponse converte uma entidade User; url monta a URL pública do avatar
func ToUserResponse(user *entities.User, url func(string) string) UserResponse {
	response := UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email.String(),
		Posts:     user.PostCount,
		CreatedAt: user.CreatedAt,
	}
	if user.HasAvatar() {
		response.Avatar = user.Avatar.String()
		response.AvatarURL = url(user.Avatar.String())
	}
	return response
}

// ToUserResponses converte uma lista de entidades User
func ToUserResponses(users []*entities.User, url func(string) string) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user, url)
	}
	return responses
}
