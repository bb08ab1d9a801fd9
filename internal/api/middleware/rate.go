package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/aved-sa/aved-web/internal/api/dto/common"
	"github.com/aved-sa/aved-web/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// Idle limiters are dropped after this long. Zero means ten minutes.
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	config   RateLimitConfig
	visitors map[string]*visitor
	now      func() time.Time
}

// NewRateLimiter creates a per-IP limiter
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		config:   config,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow reports whether ip may make a request now
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.config.IdleTTL {
			delete(l.visitors, key)
		}
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.config.RPS), l.config.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429. API callers get the
// JSON envelope and pages get a localized plain-text message.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.config.RPS))

		if !l.Allow(utils.GetRealIP(c)) {
			c.Header("Retry-After", "1")
			message := GetLocalizer(c).T("errors.tooManyRequests")
			if IsAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusTooManyRequests,
					common.NewErrorResponse(common.ErrCodeTooManyRequests, message, nil))
				return
			}
			c.String(http.StatusTooManyRequests, message)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimitMiddleware creates a new rate limiting middleware with the given configuration
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return NewRateLimiter(config).Middleware()
}
