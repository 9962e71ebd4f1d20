package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an IP's limiter is kept after its last request.
const limiterIdleTTL = 10 * time.Minute

// rateLimiterStore holds per-IP rate limiters. Idle entries expire.
type rateLimiterStore struct {
	limiters *gocache.Cache
	mu       sync.Mutex
	perMin   int
	ttl      time.Duration
}

func newRateLimiterStore(perMin int, ttl time.Duration) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 120
	}
	return &rateLimiterStore{limiters: gocache.New(ttl, ttl), perMin: perMin, ttl: ttl}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't
// exist, and pushes its expiry out by ttl.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	var limiter *rate.Limiter
	if v, ok := s.limiters.Get(ip); ok {
		limiter = v.(*rate.Limiter)
	} else {
		// perMin requests per minute, all of which may arrive in a burst.
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)
	}
	s.limiters.Set(ip, limiter, s.ttl)
	return limiter
}

func (s *rateLimiterStore) size() int {
	return s.limiters.ItemCount()
}

// RateLimitMiddleware limits requests per IP address.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	return rateLimit(newRateLimiterStore(perMin, limiterIdleTTL))
}

func rateLimit(store *rateLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
