package auth

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// AdminGuard rejects write requests that do not carry the admin token.
type AdminGuard struct {
	hash string

	mu       sync.RWMutex
	verified map[string]struct{}
}

// NewAdminGuard creates a guard for the given bcrypt hash. An empty hash
// disables the guard.
func NewAdminGuard(hash string) *AdminGuard {
	return &AdminGuard{
		hash:     strings.TrimSpace(hash),
		verified: make(map[string]struct{}),
	}
}

// Enabled reports whether a token hash is configured.
func (g *AdminGuard) Enabled() bool {
	return g != nil && g.hash != ""
}

// Check validates a presented token.
func (g *AdminGuard) Check(token string) bool {
	if !g.Enabled() {
		return true
	}
	if token == "" {
		return false
	}

	fp := fingerprint(token)
	g.mu.RLock()
	_, ok := g.verified[fp]
	g.mu.RUnlock()
	if ok {
		return true
	}

	if CheckAdminToken(token, g.hash) != nil {
		return false
	}

	g.mu.Lock()
	g.verified[fp] = struct{}{}
	g.mu.Unlock()
	return true
}

// Handler guards every non-read request, and every request under /api/admin,
// unless isPublic reports the request as a public form submission.
func (g *AdminGuard) Handler(isPublic func(c *gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Enabled() || !g.requiresToken(c, isPublic) {
			c.Next()
			return
		}

		if !g.Check(TokenFromRequest(c)) {
			c.Header("WWW-Authenticate", `Bearer realm="naat-api"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "admin token required",
				"code":  "unauthorized",
			})
			return
		}

		c.Next()
	}
}

func (g *AdminGuard) requiresToken(c *gin.Context, isPublic func(c *gin.Context) bool) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/admin") {
		return true
	}
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return isPublic == nil || !isPublic(c)
}

// TokenFromRequest reads the bearer token or the X-Admin-Token header.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader("X-Admin-Token"))
}
