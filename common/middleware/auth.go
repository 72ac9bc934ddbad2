package middleware

import (
	"errors"
	"strings"

	"github.com/Vinayyy19/Furnista/common/auth"
	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/gin-gonic/gin"
)

const (
	UserContextKey = "userID"
	RoleContextKey = "role"

	tokenCookie = "token"
)

// TokenVerifier is satisfied by *auth.TokenManager.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Authenticate accepts a bearer token or the "token" cookie and stores the
// caller's id and role on the context.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(tokenCookie)
		}
		if token == "" {
			abortWith(c, apperrors.Unauthorized("Authentication required"))
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			abortWith(c, apperrors.Unauthorized("Invalid or expired token"))
			return
		}

		c.Set(UserContextKey, identity.Subject)
		c.Set(RoleContextKey, identity.Role)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleContextKey) != auth.RoleAdmin {
			abortWith(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, error) {
	if id := c.GetString(UserContextKey); id != "" {
		return id, nil
	}
	return "", errors.New("user ID not found in context")
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortWith(c *gin.Context, err *apperrors.Error) {
	c.AbortWithStatusJSON(err.Code, err)
}
