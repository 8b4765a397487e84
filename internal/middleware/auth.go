package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/securedoc-app/securedoc/internal/identity"
	"github.com/securedoc-app/securedoc/internal/modules/serializer"
)

const userContextKey = "user"

// BearerAuth returns a middleware that authenticates requests using Cognito
// access tokens. It verifies the token signature and issuer and sets the
// resolved user in the context.
func BearerAuth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		user, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by BearerAuth, or nil when
// the request did not pass through it.
func CurrentUser(c *gin.Context) *identity.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := v.(*identity.User)
	if !ok {
		return nil
	}
	return user
}
