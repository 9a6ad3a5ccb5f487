package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/error/response"
)

// ContextUserID 认证通过后写入上下文的用户ID键
const ContextUserID = "userID"

// extractToken 从授权头中提取 Bearer 令牌
func extractToken(authHeader string) (string, bool) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthenticateUser 校验 Bearer 令牌，通过后把用户ID存入上下文
//
// 令牌缺失、格式错误、签名错误或已过期统一返回 401，不访问存储。
func AuthenticateUser(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID 读取认证中间件写入的用户ID
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
