package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserIDKey is the gin context key holding the verified caller id
const UserIDKey = "userID"

// TokenVerifier resolves a bearer token to a user id
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token. A missing
// token is 401, a token that fails verification is 403. On success the user
// id is attached to the request context for the handlers downstream.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token missing"})
			return
		}
		userID, err := verifier.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			return
		}
		c.Set(UserIDKey, userID) // Store userID in context
		c.Next()
	}
}

// CurrentUserID returns the id stored by JWTAuthMiddleware
func CurrentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(UserIDKey)
	return userID, userID != ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
