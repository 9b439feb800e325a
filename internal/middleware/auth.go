package middleware

import (
	"net/http"
	"strings"

	"sanfeliz/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	KeyAdminID = "adminID"
	KeyEmail   = "adminEmail"
	KeyRole    = "adminRole"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(KeyAdminID, claims.AdminID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
