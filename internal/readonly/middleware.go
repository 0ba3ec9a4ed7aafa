// Package readonly blocks every write while the service runs against a
// replica or during database maintenance (READ_ONLY_MODE=true).
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware blocks write operations when enabled.
// GET, HEAD and OPTIONS always pass; allowlisted path prefixes pass for
// every method.
type Middleware struct {
	enabled bool
	allowed []string
}

func NewMiddleware(enabled bool, allowedPrefixes ...string) *Middleware {
	return &Middleware{enabled: enabled, allowed: allowedPrefixes}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":     "the service is in read-only mode",
			"code":      "read_only",
			"read_only": true,
		})
	}
}

func (m *Middleware) isAllowedPath(path string) bool {
	for _, prefix := range m.allowed {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
