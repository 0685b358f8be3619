package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc names the bucket a request draws tokens from.
type KeyFunc func(*gin.Context) string

// KeyByChatUserOrIP gives every chat member a bucket per chat, so one member
// mashing buttons in a busy chat does not starve their other chats. Requests
// without a user id share a bucket per client IP.
//
//	chat:C1:user:U1   chat routes with X-User-ID
//	user:U1           other routes with X-User-ID
//	ip:203.0.113.7    anonymous requests
func KeyByChatUserOrIP() KeyFunc {
	return func(c *gin.Context) string {
		uid := UserID(c)
		switch chat := c.Param("chat_id"); {
		case uid == "":
			return "ip:" + c.ClientIP()
		case chat != "":
			return "chat:" + chat + ":user:" + uid
		default:
			return "user:" + uid
		}
	}
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter is a process-local token-bucket limiter keyed by KeyFunc.
// Buckets idle for longer than idleTTL are dropped by a sweep that runs at
// most once per idleTTL. It is safe for concurrent use.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	key     KeyFunc
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewRateLimiter refills rps tokens per second into buckets of size burst
// (at least 1).
func NewRateLimiter(rps float64, burst int, key KeyFunc) *RateLimiter {
	return &RateLimiter{
		limit:     rate.Limit(rps),
		burst:     max(burst, 1),
		key:       key,
		idleTTL:   10 * time.Minute,
		now:       time.Now,
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

// limiter returns the bucket for key, creating it on first use.
func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		for k, b := range rl.buckets {
			if now.Sub(b.seen) >= rl.idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.seen = now
	return b.lim
}

// IsRateBypass reports whether IdempotencyValidator marked the request as a
// replay. Replays do not consume tokens.
func IsRateBypass(c *gin.Context) bool {
	v, _ := c.Get(ctxKeyRateBypass)
	b, _ := v.(bool)
	return b
}

// Handler rejects requests whose bucket is empty with 429 and a Retry-After
// header carrying the whole seconds until the next token.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		lim := rl.limiter(rl.key(c))
		now := rl.now()
		res := lim.ReserveN(now, 1)
		delay := res.DelayFrom(now)
		if res.OK() && delay == 0 {
			c.Next()
			return
		}
		res.CancelAt(now)

		c.Header("Retry-After", retryAfter(delay, res.OK()))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       "too_many_requests",
			"message":    "slow down: too many requests",
		})
	}
}

// retryAfter renders delay as whole seconds, at least 1. A reservation that
// can never be satisfied (zero rate) reports one minute.
func retryAfter(delay time.Duration, ok bool) string {
	if !ok || delay == rate.InfDuration {
		return "60"
	}
	return strconv.Itoa(max(1, int(math.Ceil(delay.Seconds()))))
}
