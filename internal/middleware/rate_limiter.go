package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// window tracks hits per IP within a fixed window.
type window struct {
	count int
	end   time.Time
}

// RateLimiter is a per-IP fixed-window counter. Expired entries are purged
// lazily on access, so no background goroutine is needed.
type RateLimiter struct {
	limit   int
	period  time.Duration
	message string
	now     func() time.Time

	mu        sync.Mutex
	entries   map[string]*window
	nextPurge time.Time
}

// NewRateLimiter allows limit requests per period per client IP.
func NewRateLimiter(limit int, period time.Duration, message string) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		period:  period,
		message: message,
		now:     time.Now,
		entries: make(map[string]*window),
	}
}

// NewLoginRateLimiter guards POST /api/login.
func NewLoginRateLimiter(limit int, period time.Duration) *RateLimiter {
	return NewRateLimiter(limit, period, "Too many login attempts. Please try again later.")
}

// Allow records a hit for key and reports whether it is within the limit,
// plus the end of the current window.
func (l *RateLimiter) Allow(key string) (bool, time.Time) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextPurge) {
		l.purge(now)
		l.nextPurge = now.Add(l.period)
	}

	w, ok := l.entries[key]
	if !ok || now.After(w.end) {
		w = &window{end: now.Add(l.period)}
		l.entries[key] = w
	}
	w.count++
	return w.count <= l.limit, w.end
}

func (l *RateLimiter) purge(now time.Time) {
	purged := 0
	for k, w := range l.entries {
		if now.After(w.end) {
			delete(l.entries, k)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.entries)).Msg("rate limiter entries purged")
	}
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, end := l.Allow(c.ClientIP())
		if !ok {
			retry := int(time.Until(end).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}
