package middleware

import (
	"net/http"
	"strings"

	"examgen-backend/internal/dto"
	"examgen-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key the authenticated user's ID is stored under.
const UserIDKey = "user_id"

// JWTAuth rejects requests lacking a valid Bearer token and stores the token's
// subject in the request context for handlers.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing authorization header"})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization header must be a Bearer token"})
			return
		}

		userID, err := service.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
