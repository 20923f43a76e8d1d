package middleware

import (
	"net/http"
	"sync"
	"time"

	"catering/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an IP's limiter is kept after its last request.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	visitors  map[string]*visitor
	perMin    int
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 100
	}
	return &rateLimiterStore{
		visitors:  make(map[string]*visitor),
		perMin:    perMin,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterIdleTTL {
		s.evictIdle(now)
	}

	v, exists := s.visitors[ip]
	if !exists {
		// perMin requests per minute, bursting up to the full minute's allowance.
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// evictIdle drops limiters not used within limiterIdleTTL. Callers hold mu.
func (s *rateLimiterStore) evictIdle(now time.Time) {
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) >= limiterIdleTTL {
			delete(s.visitors, ip)
		}
	}
	s.lastSweep = now
}

// RateLimitMiddleware limits requests per IP address to perMin a minute.
// Requests to the exempt paths are never limited.
func RateLimitMiddleware(perMin int, exempt ...string) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}
	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{
				Error:    "Rate limit exceeded. Try again later.",
				Category: "rate_limited",
			})
			return
		}
		c.Next()
	}
}
