package entities

import (
	"errors"
	"time"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

var errNegativePostCount = errors.New("post count cannot be negative")

// Limites de negócio para usuários
const (
	MinPasswordLength = 6
	MaxAvatarSize     = 500_000 // bytes
)

// User representa um autor do blog
type User struct {
	ID           string
	Name         string
	Email        valueobjects.Email
	PasswordHash string
	Avatar       valueobjects.BlobID
	PostCount    int // desnormalizado: número de posts com Creator == ID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAvatar verifica se o usuário já tem um avatar no blob store
func (u *User) HasAvatar() bool {
	return !u.Avatar.IsZero()
}

// Validate confere as invariantes de um usuário pronto para ser gravado
func (u *User) Validate() error {
	if u.Name == "" || u.PasswordHash == "" {
		return domainerrors.ErrMissingFields
	}
	if u.Email.String() == "" {
		return domainerrors.ErrInvalidEmail
	}
	if u.PostCount < 0 {
		return errNegativePostCount
	}
	return nil
}
