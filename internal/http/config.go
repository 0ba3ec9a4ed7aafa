package http

import (
	"time"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/auth"
	"github.com/naatacademy/naat-api/internal/cache"
	"github.com/naatacademy/naat-api/internal/database"
	"github.com/naatacademy/naat-api/internal/readonly"
	"github.com/naatacademy/naat-api/internal/tasks"
	"github.com/naatacademy/naat-api/internal/uploads"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Audit    *audit.Service
	Uploads  *uploads.Service

	// UploadsDir is served at /uploads when files are stored locally.
	UploadsDir string

	// Dashboard stats cache (optional)
	Cache             cache.Cache
	DashboardCacheTTL time.Duration

	// Task queue client (optional)
	Tasks *tasks.Client

	// Public URL of the website, used in share previews
	ShareBaseURL string

	// Browser origins allowed to call the API. "*" allows any.
	AllowedOrigins []string

	// Access control (all optional)
	AdminGuard  *auth.AdminGuard
	RateLimiter *auth.RateLimiter
	ReadOnly    *readonly.Middleware
	HSTSMaxAge  int

	// Proxies allowed to report the client address. Empty trusts none.
	TrustedProxies []string

	// Application info
	Version string
}
