package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pftapp/pft-backend/utils"
)

// AuthRequired проверяет JWT из заголовка Authorization и кладёт
// идентификатор пользователя в контекст запроса.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Требуется авторизация"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Сессия истекла, войдите заново"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}

// UserID читает идентификатор пользователя, положенный AuthRequired.
func UserID(c *gin.Context) int {
	id, _ := c.Get("userID")
	userID, _ := id.(int)
	return userID
}
