package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.Any("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong:"+UserID(c))
	})
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUser(t *testing.T) {
	r := newEngine(RequireUser())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(UserHeader, "  u1 ")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong:u1", w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	r := newEngine(rl.Handler())

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// 其他 IP 不受影響
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeduplicator(t *testing.T) {
	d := NewDeduplicator(time.Second)
	defer d.Stop()

	clock := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }
	r := newEngine(d.Handler())

	post := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader(body))
		req.Header.Set(UserHeader, "u1")
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusOK, post(`{"a":1}`))
	assert.Equal(t, http.StatusTooManyRequests, post(`{"a":1}`))
	assert.Equal(t, http.StatusOK, post(`{"a":2}`))

	clock = clock.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, post(`{"a":1}`))

	// GET 不去重
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)

	clock = clock.Add(time.Minute)
	d.cleanup()
	assert.Empty(t, d.requests)
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))

	w := serve(r, httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "PAYLOAD_TOO_LARGE")

	w = serve(r, httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), Logger())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "GATEWAY_TIMEOUT")
}
