package mealplan

import (
	"context"
	"errors"
	"net/http"
	"time"

	"grocery-planner/internal/api/middleware"
	"grocery-planner/internal/core/week"
	"grocery-planner/internal/infrastructure/store"
	"grocery-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store 排程的資料存取
type Store interface {
	AddMealPlanEntry(ctx context.Context, userID, planDate, recipeID string) (*store.MealPlanEntry, error)
	DeleteMealPlanEntry(ctx context.Context, userID, id string) error
	ListMealPlanEntries(ctx context.Context, userID string, w week.Window) ([]store.MealPlanEntry, error)
}

// Invalidator 排程變更後清除購物清單快取
type Invalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// AddRequest 把食譜排到某一天
type AddRequest struct {
	PlanDate string `json:"plan_date" binding:"required"`
	RecipeID string `json:"recipe_id" binding:"required"`
}

// Handler 排程處理程序
type Handler struct {
	store       Store
	invalidator Invalidator
	now         func() time.Time
}

// NewHandler 創建新的排程處理程序
func NewHandler(s Store, inv Invalidator) *Handler {
	return &Handler{store: s, invalidator: inv, now: time.Now}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/meal-plan", h.List)
	rg.POST("/meal-plan", h.Add)
	rg.DELETE("/meal-plan/:id", h.Delete)
}

// List 列出一週的排程
func (h *Handler) List(c *gin.Context) {
	w := week.Resolve(c.Query("week"), h.now())

	entries, err := h.store.ListMealPlanEntries(c.Request.Context(), middleware.UserID(c), w)
	if err != nil {
		common.LogError("讀取排程失敗", zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week_start": w.StartISO,
		"week_end":   w.EndISO,
		"days":       w.Days(),
		"entries":    entries,
	})
}

// Add 新增排程；日期一律存成 YYYY-MM-DD
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	date, err := week.ParseReference(req.PlanDate)
	if err != nil {
		common.RespondError(c, common.NewValidationError(err.Error()))
		return
	}
	planDate := date.Format(week.ISOLayout)

	userID := middleware.UserID(c)
	entry, err := h.store.AddMealPlanEntry(c.Request.Context(), userID, planDate, req.RecipeID)
	if errors.Is(err, store.ErrNotFound) {
		common.RespondError(c, common.ErrNotFound)
		return
	}
	if err != nil {
		common.LogError("新增排程失敗", zap.Error(err))
		common.RespondError(c, err)
		return
	}

	common.LogInfo("排程已新增",
		zap.String("user_id", userID),
		zap.String("plan_date", planDate),
		zap.String("recipe_id", req.RecipeID),
	)
	h.invalidator.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, entry)
}

// Delete 移除排程
func (h *Handler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	err := h.store.DeleteMealPlanEntry(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		common.RespondError(c, common.ErrNotFound)
		return
	}
	if err != nil {
		common.LogError("刪除排程失敗", zap.Error(err))
		common.RespondError(c, err)
		return
	}

	h.invalidator.Invalidate(c.Request.Context(), userID)
	c.Status(http.StatusNoContent)
}
