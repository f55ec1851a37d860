package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-api/pkg/jwt"
	"github.com/d60-Lab/social-api/pkg/response"
)

const contextUserIDKey = "userID"

// JWTAuth 校验 Bearer token，把主体用户 ID 写入请求上下文
func JWTAuth(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}
		claims, err := tokens.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		c.Set(contextUserIDKey, claims.UserID)
		c.Next()
	}
}

// SubjectID 返回鉴权中间件注入的用户 ID；未鉴权路由返回空串
func SubjectID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}
