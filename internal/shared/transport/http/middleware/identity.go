package middleware

import (
	"strconv"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

const userIDKey = "identity.user_id"

// Identity 读取上游网关注入的 X-User-ID。本服务不做会话签发，
// 身份由入口网关校验后透传。缺失或非法直接拒绝。
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			_ = c.Error(apperr.NewAuthentication("Missing user identity"))
			c.Abort()
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			_ = c.Error(apperr.NewAuthentication("Invalid user identity"))
			c.Abort()
			return
		}
		c.Set(userIDKey, uint(id))
		c.Next()
	}
}

// UserID 取当前请求的调用方 ID。只在 Identity 之后的 handler 里有效。
func UserID(c *gin.Context) uint {
	id, _ := c.Get(userIDKey)
	uid, _ := id.(uint)
	return uid
}
