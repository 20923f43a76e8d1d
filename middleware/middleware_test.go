package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catering/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:5000", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "10.0.0.2:5000", "198.51.100.4"},
		{"remote addr", nil, "192.0.2.10:43120", "192.0.2.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own allowance.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetClientIPIgnoresHeadersFromUntrustedPeer(t *testing.T) {
	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	require.NoError(t, engine.SetTrustedProxies([]string{"10.0.0.0/8"}))

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.9:5000"
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "192.0.2.9", getClientIP(c))

	c.Request.RemoteAddr = "10.1.2.3:5000"
	assert.Equal(t, "203.0.113.7", getClientIP(c))
}

func TestRateLimitMiddlewareExemptPath(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(1, "/webhook"))
	r.POST("/webhook", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/prices", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
		req.RemoteAddr = "54.187.174.169:443"
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "delivery %d", i)
	}

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/prices", nil)
		req.RemoteAddr = "54.187.174.169:443"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterStoreEvictsIdleVisitors(t *testing.T) {
	store := newRateLimiterStore(10)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	store.lastSweep = now

	first := store.getLimiter("192.0.2.1")
	assert.Same(t, first, store.getLimiter("192.0.2.1"))

	now = now.Add(limiterIdleTTL + time.Second)
	store.getLimiter("192.0.2.2")

	assert.Len(t, store.visitors, 1)
	assert.Contains(t, store.visitors, "192.0.2.2")
	assert.NotSame(t, first, store.getLimiter("192.0.2.1"))
}

func TestRequestLoggerSetsLoggerAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	var sawLogger bool
	r.GET("/", func(c *gin.Context) {
		_, sawLogger = c.Get("logger")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(w, req)

	assert.True(t, sawLogger)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}
