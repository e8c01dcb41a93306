package recipe

import (
	"context"
	"errors"
	"net/http"

	"grocery-planner/internal/api/middleware"
	"grocery-planner/internal/infrastructure/store"
	"grocery-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store 食譜的資料存取
type Store interface {
	CreateRecipe(ctx context.Context, r *store.Recipe) error
	GetRecipe(ctx context.Context, userID, id string) (*store.Recipe, error)
	ListRecipes(ctx context.Context, userID string) ([]store.Recipe, error)
	UpdateRecipe(ctx context.Context, r *store.Recipe) error
	DeleteRecipe(ctx context.Context, userID, id string) error
	ListIngredients(ctx context.Context, userID, recipeID string) ([]store.RecipeIngredient, error)
}

// Invalidator 食譜變更後清除購物清單快取
type Invalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// RecipeRequest 新增或更新食譜
type RecipeRequest struct {
	Title        string `json:"title" binding:"required"`
	Ingredients  string `json:"ingredients"`  // 每行一項食材
	Instructions string `json:"instructions"` // 做法
}

// Handler 食譜處理程序
type Handler struct {
	store       Store
	invalidator Invalidator
}

// NewHandler 創建新的食譜處理程序
func NewHandler(s Store, inv Invalidator) *Handler {
	return &Handler{store: s, invalidator: inv}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/recipes", h.List)
	rg.POST("/recipes", h.Create)
	rg.GET("/recipes/:id", h.Get)
	rg.PUT("/recipes/:id", h.Update)
	rg.DELETE("/recipes/:id", h.Delete)
	rg.GET("/recipes/:id/ingredients", h.Ingredients)
}

// List 列出食譜
func (h *Handler) List(c *gin.Context) {
	recipes, err := h.store.ListRecipes(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Create 新增食譜
func (h *Handler) Create(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	userID := middleware.UserID(c)
	r := &store.Recipe{
		UserID:       userID,
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}
	if err := h.store.CreateRecipe(c.Request.Context(), r); err != nil {
		respondStoreError(c, err)
		return
	}

	common.LogInfo("食譜已新增", zap.String("user_id", userID), zap.String("recipe_id", r.ID))
	h.invalidator.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, r)
}

// Get 取得單一食譜
func (h *Handler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	r, err := h.store.GetRecipe(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Update 更新食譜
func (h *Handler) Update(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	existing, err := h.store.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	existing.Title = req.Title
	existing.Ingredients = req.Ingredients
	existing.Instructions = req.Instructions
	if err := h.store.UpdateRecipe(c.Request.Context(), existing); err != nil {
		respondStoreError(c, err)
		return
	}

	h.invalidator.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, existing)
}

// Delete 刪除食譜
func (h *Handler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	if err := h.store.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondStoreError(c, err)
		return
	}

	common.LogInfo("食譜已刪除", zap.String("user_id", userID), zap.String("recipe_id", id))
	h.invalidator.Invalidate(c.Request.Context(), userID)
	c.Status(http.StatusNoContent)
}

// Ingredients 列出食譜已解析的食材
func (h *Handler) Ingredients(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	items, err := h.store.ListIngredients(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": items})
}

// recipeID 食譜 ID 都是 UUID，其他格式直接視為不存在
func recipeID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !common.IsUUID(id) {
		common.RespondError(c, common.ErrNotFound)
		return "", false
	}
	return id, true
}

func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		common.RespondError(c, common.ErrNotFound)
		return
	}
	common.LogError("食譜資料存取失敗", zap.Error(err), zap.String("path", c.Request.URL.Path))
	common.RespondError(c, err)
}
