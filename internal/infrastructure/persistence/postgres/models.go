package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string  `gorm:"type:uuid;primaryKey"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string  `gorm:"type:varchar(500);not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	Avatar       *string `gorm:"type:varchar(500)"`
	PostCount    int     `gorm:"not null;default:0"`
	CreatedAt    int64   `gorm:"autoCreateTime:nano;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:nano"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PostModel é o model GORM para posts
type PostModel struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	Title       string          `gorm:"type:varchar(500);not null"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	Description string          `gorm:"type:text;not null"`
	Thumbnail   string          `gorm:"type:varchar(500);not null"`
	CreatorID   string          `gorm:"type:uuid;not null;index"`
	Likes       []PostLikeModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt   int64           `gorm:"autoCreateTime:nano;index"`
	UpdatedAt   int64           `gorm:"autoUpdateTime:nano"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (m *PostModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PostLikeModel guarda uma curtida; a chave composta garante no máximo uma por usuário
type PostLikeModel struct {
	PostID    string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;primaryKey;index"`
	CreatedAt int64  `gorm:"autoCreateTime:nano"`
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}

// isUUID evita consultar colunas uuid com ids malformados, que no PostgreSQL
// viram erro de sintaxe em vez de "não encontrado"
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// Models lista os models migrados na inicialização
func Models() []any {
	return []any{&UserModel{}, &PostModel{}, &PostLikeModel{}}
}
