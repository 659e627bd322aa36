package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meditech-backend/internal/util"
)

// RequireAdmin guards operator-only routes with a Bearer JWT.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Error: "missing token"})
			return
		}

		claims, err := util.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Error: "invalid or expired token"})
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Error: "admin access required"})
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}
