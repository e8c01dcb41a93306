package cache

import (
	"context"
	"fmt"

	"grocery-planner/internal/infrastructure/config"
	"grocery-planner/internal/pkg/common"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

// Store 購物清單快取的儲存後端
type Store interface {
	// Get 找不到或已過期時回傳 common.ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// DeletePrefix 刪除所有以 prefix 開頭的鍵，回傳刪除數量
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	// Generation 讀取計數器，不存在時為 0
	Generation(ctx context.Context, key string) (int64, error)
	// Incr 將計數器加一並回傳新值，計數器不會過期
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

// GroceryKey 使用者某一世代、某一週的購物清單鍵
func GroceryKey(userID string, generation int64, weekStart string) string {
	return fmt.Sprintf("%sg%d:%s", UserPrefix(userID), generation, weekStart)
}

// GenerationKey 使用者購物清單的世代計數器；不在 UserPrefix 之下，DeletePrefix 不會清掉它
func GenerationKey(userID string) string {
	return "grocery-gen:" + userID
}

// UserPrefix 使用者所有購物清單鍵的共同前綴
func UserPrefix(userID string) string {
	return fmt.Sprintf("grocery:%s:", userID)
}

// New 依設定建立快取；停用時回傳 nil
func New(ctx context.Context, cfg *config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Backend {
	case backendRedis:
		r, err := NewRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	case backendMemory, "":
		return NewMemory(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
