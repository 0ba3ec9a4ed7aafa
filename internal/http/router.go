package http

import (
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/auth"
	"github.com/naatacademy/naat-api/internal/database/dashboard"
	"github.com/naatacademy/naat-api/internal/database/records"
	"github.com/naatacademy/naat-api/internal/entities"
)

// publicSubmissionPaths accept POSTs from the website forms without the
// admin token. They are rate limited instead.
var publicSubmissionPaths = []string{
	"/api/bazmedurood",
	"/api/mazmoonsub",
	"/api/kalam-submissions/kalamsub",
}

func isPublicSubmission(c *gin.Context) bool {
	if c.Request.Method != http.MethodPost {
		return false
	}
	return slices.Contains(publicSubmissionPaths, strings.TrimSuffix(c.Request.URL.Path, "/"))
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	// Rate limiting keys on ClientIP, which must not follow spoofed headers.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("WARNING: invalid trusted proxies %v, trusting none: %v", cfg.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.HSTSMaxAge > 0 {
		router.Use(auth.StrictTransportSecurityMiddleware(cfg.HSTSMaxAge))
	}

	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	if cfg.ReadOnly != nil && cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.Handler())
	}
	if cfg.AdminGuard != nil && cfg.AdminGuard.Enabled() {
		router.Use(cfg.AdminGuard.Handler(isPublicSubmission))
	}
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware(isPublicSubmission))
	}

	if cfg.UploadsDir != "" {
		router.Static("/uploads", cfg.UploadsDir)
	}

	var db Pinger
	if cfg.Database != nil {
		db = cfg.Database
	}
	health := NewHealthController(db, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.Database == nil {
		return router
	}
	gdb := cfg.Database.DB

	kalaamRepo := records.NewRepository[entities.Kalaam](gdb)

	api := router.Group("/api")

	NewArticlesController(records.NewRepository[entities.Article](gdb), cfg.Audit).
		RegisterRoutes(api.Group("/articles"))
	NewKalaamController(kalaamRepo, cfg.Audit).
		RegisterRoutes(api.Group("/kalaam"))
	NewWritersController(records.NewRepository[entities.Writer](gdb), cfg.Uploads, cfg.Audit).
		RegisterRoutes(api.Group("/writers"))
	NewBooksController(records.NewRepository[entities.Book](gdb), cfg.Uploads, cfg.Audit).
		RegisterRoutes(api.Group("/books"))
	NewCategoriesController(records.NewRepository[entities.Category](gdb), cfg.Audit).
		RegisterRoutes(api.Group("/categories"))
	NewTopicsController(records.NewRepository[entities.Topic](gdb), cfg.Audit).
		RegisterRoutes(api.Group("/topics"))
	NewGroupsController(records.NewRepository[entities.Group](gdb), cfg.Uploads, cfg.Audit).
		RegisterRoutes(api.Group("/groups"))
	NewSectionsController(records.NewRepository[entities.Section](gdb), cfg.Uploads, cfg.Audit).
		RegisterRoutes(api.Group("/sections"))
	NewLanguagesController(records.NewRepository[entities.Language](gdb), cfg.Audit).
		RegisterRoutes(api.Group("/languages"))

	NewDashboardController(dashboard.NewRepository(gdb), cfg.Cache, cfg.DashboardCacheTTL).
		RegisterRoutes(api.Group("/dashboard"))

	// Public form submissions
	NewBazmeDuroodController(records.NewRepository[entities.BazmeDurood](gdb).NewestBy("inserted_date"), cfg.Audit).
		RegisterRoutes(api.Group("/bazmedurood"))
	NewMazmoonController(records.NewRepository[entities.MazmoonSubmission](gdb).NewestBy("created_at"), cfg.Audit).
		RegisterRoutes(api.Group("/mazmoonsub"), api.Group("/mazmoonssub"))
	kalamSubmissions := api.Group("/kalam-submissions")
	NewKalamSubmissionController(records.NewRepository[entities.KalamSubmission](gdb).NewestBy("created_at"), cfg.Audit).
		RegisterRoutes(kalamSubmissions.Group("/kalamsub"), kalamSubmissions.Group("/kalamssub"))

	if cfg.Uploads != nil {
		api.POST("/upload", NewUploadController(cfg.Uploads).Upload)
	}

	var queue TaskQueue
	if cfg.Tasks != nil {
		queue = cfg.Tasks
	}
	NewAdminController(queue, cfg.Audit).RegisterRoutes(api.Group("/admin"))

	NewShareController(kalaamRepo, cfg.ShareBaseURL).RegisterRoutes(router)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Token"},
		ExposeHeaders:    []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
