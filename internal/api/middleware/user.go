package middleware

import (
	"strings"

	"grocery-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// UserHeader 上游認證層帶入的使用者識別
const UserHeader = "X-User-ID"

const userIDKey = "user_id"

// RequireUser 沒有使用者識別時回傳 401
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserHeader))
		if userID == "" {
			common.RespondError(c, common.ErrUnauthorized)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID 取得 RequireUser 設定的使用者
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
