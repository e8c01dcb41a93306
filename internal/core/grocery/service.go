package grocery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocery-planner/internal/core/cache"
	"grocery-planner/internal/core/week"
	"grocery-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Source 提供週區間內排程的食譜
type Source interface {
	ListScheduled(ctx context.Context, userID string, w week.Window) ([]ScheduledRecipe, error)
}

// ListItem 回應中的一列
type ListItem struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Display  string  `json:"display"`
}

// ListSection 回應中的一個類別
type ListSection struct {
	Name  string     `json:"name"`
	Items []ListItem `json:"items"`
}

// List 一週的購物清單
type List struct {
	WeekStart string        `json:"week_start"`
	WeekEnd   string        `json:"week_end"`
	PrevWeek  string        `json:"prev_week"`
	NextWeek  string        `json:"next_week"`
	MealCount int           `json:"meal_count"`
	Items     []ListItem    `json:"items"`
	Sections  []ListSection `json:"sections"`
}

// Service 購物清單服務
type Service struct {
	source   Source
	cache    cache.Store
	classify Classifier
	now      func() time.Time
}

// NewService 創建購物清單服務；store 為 nil 時不快取
func NewService(source Source, store cache.Store, classify Classifier) *Service {
	if classify == nil {
		classify = Uncategorized
	}
	return &Service{
		source:   source,
		cache:    store,
		classify: classify,
		now:      time.Now,
	}
}

// Build 產生使用者某一週的購物清單，weekParam 無法解析時使用本週
func (s *Service) Build(ctx context.Context, userID, weekParam string) (*List, error) {
	w := week.Resolve(weekParam, s.now())

	// 世代在讀取資料前取得；期間有 Invalidate 時，寫入的舊鍵不會再被讀到
	key, cacheable := s.cacheKey(ctx, userID, w.StartISO)
	if cacheable {
		if list, ok := s.fromCache(ctx, key); ok {
			return list, nil
		}
	}

	recipes, err := s.source.ListScheduled(ctx, userID, w)
	if err != nil {
		return nil, fmt.Errorf("load scheduled recipes: %w", err)
	}

	res := Run(recipes)
	list := &List{
		WeekStart: w.StartISO,
		WeekEnd:   w.EndISO,
		PrevWeek:  w.Previous().StartISO,
		NextWeek:  w.Next().StartISO,
		MealCount: len(recipes),
		Items:     toListItems(res.Items),
	}
	for _, sec := range Group(res.Items, s.classify) {
		list.Sections = append(list.Sections, ListSection{Name: sec.Name, Items: toListItems(sec.Items)})
	}
	if list.Sections == nil {
		list.Sections = []ListSection{}
	}

	common.LogInfo("購物清單已產生",
		zap.String("user_id", userID),
		zap.String("week_start", w.StartISO),
		zap.Int("meals", len(recipes)),
		zap.Int("items", len(list.Items)),
		zap.Int("lines_read", res.LinesRead),
		zap.Int("lines_skipped", res.LinesSkipped),
	)

	if cacheable {
		s.toCache(ctx, key, list)
	}
	return list, nil
}

// Invalidate 清除使用者所有已快取的購物清單
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, cache.GenerationKey(userID)); err != nil {
		common.LogWarn("更新快取世代失敗", zap.String("user_id", userID), zap.Error(err))
	}

	// 舊世代的鍵已不會被讀取，刪除只為釋放空間
	n, err := s.cache.DeletePrefix(ctx, cache.UserPrefix(userID))
	if err != nil {
		common.LogWarn("清除快取失敗", zap.String("user_id", userID), zap.Error(err))
		return
	}
	common.LogDebug("快取已清除", zap.String("user_id", userID), zap.Int("count", n))
}

// cacheKey 取得目前世代的快取鍵；未啟用快取或讀取世代失敗時不快取
func (s *Service) cacheKey(ctx context.Context, userID, weekStart string) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	gen, err := s.cache.Generation(ctx, cache.GenerationKey(userID))
	if err != nil {
		common.LogWarn("讀取快取世代失敗", zap.String("user_id", userID), zap.Error(err))
		return "", false
	}
	return cache.GroceryKey(userID, gen, weekStart), true
}

// fromCache 快取失效或損毀時視為未命中
func (s *Service) fromCache(ctx context.Context, key string) (*List, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取快取失敗", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var list List
	if err := common.ParseJSONBytes(data, &list); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &list, true
}

func (s *Service) toCache(ctx context.Context, key string, list *List) {
	data, err := common.ToJSON(list)
	if err != nil {
		common.LogWarn("序列化購物清單失敗", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, []byte(data)); err != nil {
		common.LogWarn("寫入快取失敗", zap.String("key", key), zap.Error(err))
	}
}

func toListItems(items []Item) []ListItem {
	out := make([]ListItem, 0, len(items))
	for _, it := range items {
		out = append(out, ListItem{
			Label:    it.Label,
			Quantity: it.Quantity,
			Display:  it.Display(),
		})
	}
	return out
}
