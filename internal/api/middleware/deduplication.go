package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grocery-planner/internal/pkg/common"
)

// Deduplicator 短時間內相同的寫入請求只處理一次
type Deduplicator struct {
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	requests map[string]time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewDeduplicator 創建去重器並啟動清理協程
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}
	d := &Deduplicator{
		window:   window,
		now:      time.Now,
		requests: make(map[string]time.Time),
		stop:     make(chan struct{}),
	}
	go d.cleanupLoop(10 * time.Minute)
	return d
}

// Handler 去重中間件，只處理 POST 請求
func (d *Deduplicator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}

			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		// 同一使用者、同一路徑、同一內容視為重複
		fingerprint := c.GetHeader(UserHeader) + ":" + c.Request.Method + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		if !d.record(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			common.RespondError(c, common.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

// record 記錄指紋；在視窗內重複時回傳 false
func (d *Deduplicator) record(fingerprint string) bool {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if last, exists := d.requests[fingerprint]; exists && now.Sub(last) <= d.window {
		return false
	}
	d.requests[fingerprint] = now
	return true
}

func (d *Deduplicator) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.cleanup()
		case <-d.stop:
			return
		}
	}
}

func (d *Deduplicator) cleanup() {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	for k, t := range d.requests {
		if now.Sub(t) > 10*d.window {
			delete(d.requests, k)
		}
	}
}

// Stop 停止清理協程
func (d *Deduplicator) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}
