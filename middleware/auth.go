package middleware

import (
	"net/http"
	"strings"

	"lexconnect/utils"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key carrying the authenticated user's ID.
const UserIDKey = "userID"

// JWTAuthUserMiddleware validates the bearer token and stores the user ID
// in the request context. When optional is true, requests without a token
// pass through unauthenticated.
func JWTAuthUserMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
