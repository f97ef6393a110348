package ports

import "github.com/rafabene/blog-backend/internal/domain/entities"

// Identity é o usuário autenticado extraído do token
type Identity struct {
	ID   string
	Name string
}

// PasswordHasher define a interface para hash de senhas
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenManager emite e verifica tokens de acesso
type TokenManager interface {
	Issue(user *entities.User) (string, error)
	Verify(token string) (*Identity, error)
}
