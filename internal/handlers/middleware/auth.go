package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// IdentityContextKey guarda o ports.Identity do usuário autenticado
const IdentityContextKey = "identity"

// FailureHandler escreve a resposta de erro e aborta a requisição
type FailureHandler func(c *gin.Context, err error)

// RequireAuth exige "Authorization: Bearer <token>" válido
func RequireAuth(tokens ports.TokenManager, fail FailureHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			fail(c, domainerrors.ErrUnauthorized)
			return
		}

		identity, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			fail(c, err)
			return
		}

		c.Set(IdentityContextKey, *identity)
		c.Next()
	}
}

// CurrentIdentity devolve o usuário autenticado pelo RequireAuth
func CurrentIdentity(c *gin.Context) (ports.Identity, bool) {
	v, ok := c.Get(IdentityContextKey)
	if !ok {
		return ports.Identity{}, false
	}
	identity, ok := v.(ports.Identity)
	return identity, ok
}
