// Package middleware holds the Gin middleware of the carpool API.
//
// The logging middleware in this file gives every request a correlation id,
// one structured access line carrying the chat, user and operation it
// concerns, and a request-scoped zerolog.Logger that handlers reach through
// LoggerFrom and services through zerolog.Ctx.
//
// Install as RequestID(), Identity(), Logger(), Recovery().
package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"

	maxRequestIDLen = 128
	maxLoggedQuery  = 2048
)

// RequestID reuses a sane incoming X-Request-ID or mints a UUID, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}

// validRequestID accepts up to 128 visible ASCII characters; anything else
// could forge log lines or bloat them.
func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] > '~' {
			return false
		}
	}
	return true
}

// LogOptions configures Logger.
type LogOptions struct {
	// MaskHeaders are logged as "[REDACTED]" in addition to Authorization,
	// Cookie and Set-Cookie.
	MaskHeaders []string
}

var scrubbers = []struct {
	re  *regexp.Regexp
	tag string
}{
	// UUIDs first so the phone pattern cannot take their digit runs.
	{regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`), "[REDACTED:id]"},
	{regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`), "[REDACTED:email]"},
	{regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`), "[REDACTED:phone]"},
}

// redact scrubs ids, emails and phone numbers out of free text.
func redact(s string) string {
	for _, sc := range scrubbers {
		if s == "" {
			break
		}
		s = sc.re.ReplaceAllString(s, sc.tag)
	}
	return s
}

// Logger writes one access line per request. 5xx responses and requests
// that collected gin errors log at error, 4xx at warn, the rest at info.
func Logger(opts ...LogOptions) gin.HandlerFunc {
	masked := map[string]bool{"authorization": true, "cookie": true, "set-cookie": true}
	for _, o := range opts {
		for _, h := range o.MaskHeaders {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				masked[h] = true
			}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := log.With().
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", route).
			Str("remote_ip", c.ClientIP())
		if uid := UserID(c); uid != "" {
			ctx = ctx.Str("user_id", uid)
		}
		for _, p := range []string{"chat_id", "trip_id", "car_id"} {
			if v := c.Param(p); v != "" {
				ctx = ctx.Str(p, v)
			}
		}
		l := ctx.Logger()

		c.Set(loggerKey, &l)
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		ev := l.WithLevel(accessLevel(status, len(c.Errors) > 0)).
			Str("operation", Operation(c)).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int64("bytes_in", c.Request.ContentLength).
			Int("bytes_out", c.Writer.Size()).
			Str("query", clip(redact(c.Request.URL.RawQuery), maxLoggedQuery)).
			Interface("headers", scrubHeaders(c.Request.Header, masked))
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Msg("request")
	}
}

func accessLevel(status int, ginErrors bool) zerolog.Level {
	switch {
	case ginErrors || status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func scrubHeaders(h http.Header, masked map[string]bool) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if masked[strings.ToLower(k)] {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = redact(strings.Join(vv, ", "))
	}
	return out
}

// Recovery turns a handler panic into the 500 envelope, or a bare 500 when
// the handler already started writing, and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			rid := c.GetString(requestIDKey)
			LoggerFrom(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("operation", Operation(c)).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header(requestIDHeader, rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": rid,
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the logger Logger attached to c, or the global logger
// when none was.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	v, _ := c.Get(loggerKey)
	if l, ok := v.(*zerolog.Logger); ok {
		return l
	}
	l := log.Logger
	return &l
}

// clip cuts s to n bytes and marks the cut.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
