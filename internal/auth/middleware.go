package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const principalKey = "auth_principal"

// Middleware enforces a valid bearer token and stores the principal on the context.
func Middleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := v.Verify(BearerToken(c.GetHeader("Authorization")))
		if err != nil {
			message := "invalid token"
			if errors.Is(err, ErrMissingToken) {
				message = "missing bearer token"
			}
			abortUnauthorized(c, message)
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Middleware.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"message": message,
			"type":    "auth",
		},
	})
}
