package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/utils"
)

// AuthMiddleware accepts "Authorization: Bearer <token>".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		authenticate(c, strings.TrimPrefix(authHeader, "Bearer "))
	}
}

// WebSocketAuthMiddleware reads the token from ?token= since browsers cannot
// set headers on a websocket handshake.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		authenticate(c, token)
	}
}

func authenticate(c *gin.Context, token string) {
	claims, err := utils.ParseToken(token)
	if err != nil || claims == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
		c.Abort()
		return
	}
	if claims.EmployeeID == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid employee ID in token"))
		c.Abort()
		return
	}

	c.Set("employee_id", claims.EmployeeID)
	c.Set("role", claims.Role)
	c.Next()
}
