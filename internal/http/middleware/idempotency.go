package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey lets a chat adapter retry trip creation safely: the
// same key from the same user in the same chat returns the first trip.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdempotency = "idempotency"
	ctxKeyRateBypass  = "rate.bypass"

	defaultMaxKeyLen = 200
)

// Token characters plus ':' and '~', which covers UUIDs and adapter ids
// such as "tg:update:991".
var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~:\-]+$`)

// idempotencyState is what IdempotencyValidator learned about a request.
type idempotencyState struct {
	key    string
	replay bool
}

func idempotencyFrom(c *gin.Context) idempotencyState {
	v, _ := c.Get(ctxKeyIdempotency)
	st, _ := v.(idempotencyState)
	return st
}

// GetIdempotencyKey returns the key accepted by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	st := idempotencyFrom(c)
	return st.key, st.key != ""
}

// IsReplay reports whether a live receipt already exists for the request's
// chat, user and key.
func IsReplay(c *gin.Context) bool { return idempotencyFrom(c).replay }

// IdempotencyOptions constrains accepted keys.
type IdempotencyOptions struct {
	MaxLen  int            // default 200
	Pattern *regexp.Regexp // default: token characters plus ':' and '~'
}

// IdempotencyLookup reports whether (userID, chatID, key) has a receipt that
// is live at now.
type IdempotencyLookup func(ctx context.Context, userID, chatID, key string, now time.Time) (bool, error)

// IdempotencyValidator rejects malformed Idempotency-Key headers with 400 and
// remembers well-formed ones for the handler. When the request names both a
// user and a :chat_id, lookup decides whether it is a replay; replays skip
// the rate limiter because they create nothing. A failing lookup is logged
// and treated as a miss, so the handler creates the trip as usual.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	if opts.MaxLen <= 0 {
		opts.MaxLen = defaultMaxKeyLen
	}
	if opts.Pattern == nil {
		opts.Pattern = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > opts.MaxLen || !opts.Pattern.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_request",
				"message":    "invalid Idempotency-Key",
			})
			return
		}

		st := idempotencyState{key: key}
		uid, chat := UserID(c), c.Param("chat_id")
		if lookup != nil && uid != "" && chat != "" {
			hit, err := lookup(c.Request.Context(), uid, chat, key, time.Now().UTC())
			if err != nil {
				LoggerFrom(c).Warn().Err(err).Str("idempotency_key", key).Msg("trip receipt lookup failed")
			}
			st.replay = err == nil && hit
		}
		c.Set(ctxKeyIdempotency, st)
		if st.replay {
			c.Set(ctxKeyRateBypass, true)
		}
		c.Next()
	}
}
