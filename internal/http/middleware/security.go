package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultHSTSMaxAge = 180 * 24 * time.Hour

// SecurityOptions selects the optional hardening headers.
type SecurityOptions struct {
	// EnableHSTS sends Strict-Transport-Security on HTTPS requests. Leave it
	// off unless the hop between proxy and server is HTTPS too.
	EnableHSTS bool
	// HSTSMaxAge defaults to 180 days when not positive.
	HSTSMaxAge time.Duration
	// CacheControl is sent on every response when set. "no-store" also
	// sends Pragma and Expires for HTTP/1.0 caches.
	CacheControl string
	// EnablePolicy adds Permissions-Policy and
	// X-Permitted-Cross-Domain-Policies.
	EnablePolicy bool
}

// SecurityHeaders stamps a fixed header set on every response. The set is
// computed once; per request only HSTS and the X-Request-ID exposure depend
// on the request.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	fixed := staticSecurityHeaders(opt)
	hsts := ""
	if opt.EnableHSTS {
		hsts = hstsValue(opt.HSTSMaxAge)
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range fixed {
			h[k] = v
		}
		if hsts != "" && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		if h.Get("X-Request-ID") != "" {
			exposeHeader(h, "X-Request-ID")
		}
		c.Next()
	}
}

func staticSecurityHeaders(opt SecurityOptions) http.Header {
	h := http.Header{}
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Referrer-Policy", "no-referrer")
	if opt.EnablePolicy {
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
		h.Set("X-Permitted-Cross-Domain-Policies", "none")
	}
	if opt.CacheControl != "" {
		h.Set("Cache-Control", opt.CacheControl)
		if opt.CacheControl == "no-store" {
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
	}
	return h
}

func hstsValue(maxAge time.Duration) string {
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	return "max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10) + "; includeSubDomains"
}

// exposeHeader adds name to Access-Control-Expose-Headers unless a token
// already names it.
func exposeHeader(h http.Header, name string) {
	const key = "Access-Control-Expose-Headers"
	cur := h.Get(key)
	for _, tok := range strings.Split(cur, ",") {
		if strings.EqualFold(strings.TrimSpace(tok), name) {
			return
		}
	}
	if cur == "" {
		h.Set(key, name)
		return
	}
	h.Set(key, cur+", "+name)
}

// isHTTPS trusts X-Forwarded-Proto from the fronting proxy.
func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
