package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowMethods = "GET,POST,PATCH,DELETE,OPTIONS"
	allowHeaders = "Content-Type"
	maxAge       = "86400"
)

// OriginMatcher holds a compiled origin allow-list. It is built once at
// startup and never mutated, so per-request matching needs no locking.
type OriginMatcher struct {
	exact    map[string]struct{}
	patterns []*regexp.Regexp
}

// NewOriginMatcher compiles an allow-list. Entries containing `*` become
// patterns where `*` matches any substring and every other character is
// literal; the rest are exact matches. Empty entries are dropped.
func NewOriginMatcher(entries []string) *OriginMatcher {
	m := &OriginMatcher{exact: make(map[string]struct{})}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "*") {
			expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(e), `\*`, ".*") + "$"
			m.patterns = append(m.patterns, regexp.MustCompile(expr))
			continue
		}
		m.exact[e] = struct{}{}
	}
	return m
}

// Allows reports whether the given request origin matches the allow-list.
func (m *OriginMatcher) Allows(origin string) bool {
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, p := range m.patterns {
		if p.MatchString(origin) {
			return true
		}
	}
	return false
}

// CORS validates the Origin header against the matcher and stamps CORS
// response headers. Disallowed origins are rejected with 403 for every
// method, preflight included. Preflight requests short-circuit with 204.
func CORS(m *OriginMatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" && !m.Allows(origin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
			return
		}

		h := c.Writer.Header()
		if origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
