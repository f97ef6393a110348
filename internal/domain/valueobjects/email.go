package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email format")

const (
	maxEmailLength = 254
	maxLocalLength = 64
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9\-]+(\.[a-z0-9\-]+)*\.[a-z]{2,}$`)

// Email é o endereço normalizado (minúsculo, sem espaços) usado como login
type Email struct {
	value string
}

// NewEmail normaliza e valida o endereço informado pelo cliente
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	local, _, ok := strings.Cut(normalized, "@")
	if !ok || len(normalized) > maxEmailLength || len(local) > maxLocalLength {
		return Email{}, ErrInvalidEmail
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: normalized}, nil
}

// ParseEmail reconstrói um Email já gravado, sem revalidar o formato
func ParseEmail(stored string) Email {
	return Email{value: stored}
}

func (e Email) String() string {
	return e.value
}

// Equal compara dois endereços já normalizados
func (e Email) Equal(other Email) bool {
	return e.value == other.value
}
