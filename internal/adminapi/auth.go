package adminapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/peppone-choi/opensamguk-sub002/internal/shared/security"
)

// BearerAuth 管理端统一走 JWT Bearer 头。
func BearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 1, "msg": "missing bearer token"})
			return
		}
		claims, err := security.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 1, "msg": "invalid token"})
			return
		}
		c.Set("subject", claims.Subject)
		c.Next()
	}
}
