package grocery

import (
	"context"
	"net/http"

	"grocery-planner/internal/api/middleware"
	"grocery-planner/internal/core/grocery"
	"grocery-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Builder 產生購物清單
type Builder interface {
	Build(ctx context.Context, userID, weekParam string) (*grocery.List, error)
}

// Handler 購物清單處理程序
type Handler struct {
	builder Builder
}

// NewHandler 創建新的購物清單處理程序
func NewHandler(b Builder) *Handler {
	return &Handler{builder: b}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/grocery-list", h.Get)
}

// Get 取得一週的購物清單，week 參數可省略
func (h *Handler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	list, err := h.builder.Build(c.Request.Context(), userID, c.Query("week"))
	if err != nil {
		common.LogError("產生購物清單失敗",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
