package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cinevault/cinevault/auth"
	apperrors "github.com/cinevault/cinevault/errors"
)

// IdentityKey is the Gin context key holding the authenticated identity id.
const IdentityKey = "identity_id"

// TokenVerifier validates a token string and returns the identity it is
// bound to.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// Auth returns the bearer-token gate applied to protected routes. Every
// failure mode (missing header, non-Bearer scheme, empty token, or any
// verification error) produces the same 401 response, so a caller cannot
// tell why a token was rejected. An empty token is rejected here and never
// reaches the verifier.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	unauthorized := apperrors.Unauthorized().ToResponse()

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(apperrors.Unauthorized().HTTPStatus, unauthorized)
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || scheme != "Bearer" || token == "" {
			c.AbortWithStatusJSON(apperrors.Unauthorized().HTTPStatus, unauthorized)
			return
		}

		identityID, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(apperrors.Unauthorized().HTTPStatus, unauthorized)
			return
		}

		c.Set(IdentityKey, identityID)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identityID))
		c.Next()
	}
}

// IdentityFrom extracts the authenticated identity id set by Auth.
func IdentityFrom(c *gin.Context) (string, bool) {
	id, ok := c.Get(IdentityKey)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}
