package middleware

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

const gcInterval = 30 * time.Second

type keyLimiter struct {
	lim *rate.Limiter
	ts  time.Time
}

// RateLimiter hands out one token bucket per client key. Buckets idle longer
// than the TTL are collected lazily on lookup, so the limiter needs no
// background goroutine and lives exactly as long as its route does.
type RateLimiter struct {
	mu     sync.Mutex
	m      map[string]*keyLimiter
	r      rate.Limit
	b      int
	ttl    time.Duration
	lastGC time.Time
}

func NewRateLimiter(r rate.Limit, burst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{m: make(map[string]*keyLimiter), r: r, b: burst, ttl: ttl, lastGC: time.Now()}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastGC) > gcInterval {
		rl.gcLocked(now)
	}

	kl, ok := rl.m[key]
	if ok {
		kl.ts = now
		return kl.lim
	}
	lim := rate.NewLimiter(rl.r, rl.b)
	rl.m[key] = &keyLimiter{lim: lim, ts: now}
	return lim
}

// gcLocked drops buckets that have been idle longer than the TTL.
// Callers must hold the lock.
func (rl *RateLimiter) gcLocked(now time.Time) {
	for k, v := range rl.m {
		if now.Sub(v.ts) > rl.ttl {
			delete(rl.m, k)
		}
	}
	rl.lastGC = now
}

// RateLimit returns an IP+path token-bucket middleware used on the credential routes.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	rl := NewRateLimiter(r, burst, 2*time.Minute)
	return func(c *gin.Context) {
		key := clientIP(c.Request.RemoteAddr) + "|" + c.FullPath()
		if !rl.get(key).Allow() {
			utils.AbortWithError(c, schemas.TooManyRequests, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		c.Next()
	}
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
