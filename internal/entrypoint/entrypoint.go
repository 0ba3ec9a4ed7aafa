package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/auth"
	"github.com/naatacademy/naat-api/internal/cache"
	"github.com/naatacademy/naat-api/internal/config"
	"github.com/naatacademy/naat-api/internal/database"
	auditdb "github.com/naatacademy/naat-api/internal/database/audit"
	http_controllers "github.com/naatacademy/naat-api/internal/http"
	"github.com/naatacademy/naat-api/internal/readonly"
	"github.com/naatacademy/naat-api/internal/scheduler"
	"github.com/naatacademy/naat-api/internal/search"
	"github.com/naatacademy/naat-api/internal/storage"
	"github.com/naatacademy/naat-api/internal/storage/local"
	"github.com/naatacademy/naat-api/internal/storage/s3"
	"github.com/naatacademy/naat-api/internal/tasks"
	"github.com/naatacademy/naat-api/internal/uploads"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server stops accepting requests
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// DatabaseConfig maps the service configuration onto the database layer.
func DatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		Path:            cfg.Database.Path,
		LogLevel:        cfg.Database.LogLevel,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
}

// NewStore opens the configured upload backend. For local storage it also
// returns the directory the router serves at /uploads.
func NewStore(ctx context.Context, cfg *config.Config) (storage.Store, string, error) {
	switch cfg.Storage.Backend {
	case config.StorageS3:
		store, err := s3.New(ctx, s3.Config{
			Bucket:          cfg.Storage.S3Bucket,
			Region:          cfg.Storage.S3Region,
			Endpoint:        cfg.Storage.S3Endpoint,
			AccessKeyID:     cfg.Storage.S3AccessKeyID,
			SecretAccessKey: cfg.Storage.S3SecretKey,
			UsePathStyle:    cfg.Storage.S3UsePathStyle,
			PublicURL:       cfg.Storage.S3PublicBaseURL,
		})
		return store, "", err
	case config.StorageLocal, "":
		store, err := local.New(cfg.Uploads.Dir, cfg.Uploads.PublicBaseURL+"/uploads")
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	default:
		return nil, "", fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

// NewCache connects to Redis when REDIS_ADDR is set. Without it, or when
// Redis is unreachable, dashboard stats are read on every request.
func NewCache(cfg *config.Config) cache.Cache {
	if cfg.Cache.RedisAddr == "" {
		return cache.Noop{}
	}
	c, err := cache.NewRedis(cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	if err != nil {
		log.Printf("WARNING: Redis unavailable, dashboard cache disabled: %v", err)
		return cache.Noop{}
	}
	log.Printf("Dashboard cache connected to Redis at %s", cfg.Cache.RedisAddr)
	return c
}

// tasksDatabasePath places the queue next to a SQLite content database
// unless TASKS_DATABASE_PATH names a file.
func tasksDatabasePath(cfg *config.Config) string {
	switch {
	case cfg.Tasks.DatabasePath != "":
		return cfg.Tasks.DatabasePath
	case cfg.Database.Driver == database.DriverSQLite && cfg.Database.Path != "":
		return tasks.PathBeside(cfg.Database.Path)
	default:
		return config.DefaultTasksDatabasePath
	}
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting naat-api v%s", version)

	db, err := database.NewDatabase(DatabaseConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditdb.NewRepository(db.DB))

	store, uploadsDir, err := NewStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}
	uploadService := uploads.NewService(store, auditService)
	log.Printf("Upload storage: %s", cfg.Storage.Backend)

	dashboardCache := NewCache(cfg)
	defer dashboardCache.Close()

	reindexer := search.NewReindexer(db.DB, auditService, cfg.Search.ReindexBatchSize)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var sched *scheduler.Scheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(tasksDatabasePath(cfg), taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewRebuildSearchKeysQueue(reindexer),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		sched = scheduler.New(taskClient,
			scheduler.Job{
				Name:     "rebuild_search_keys",
				Schedule: cfg.Search.ReindexSchedule,
				Task:     tasks.RebuildSearchKeysTask{},
			},
			scheduler.Job{
				Name:     "cleanup_audit_events",
				Schedule: cfg.Audit.CleanupSchedule,
				Task:     tasks.CleanupAuditEventsTask{RetentionDays: cfg.Audit.RetentionDays},
			},
		)
		if err := sched.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	} else {
		log.Printf("Task queue disabled; search key rebuilds run only through the CLI")
	}

	adminGuard := auth.NewAdminGuard(cfg.Auth.AdminTokenHash)
	if adminGuard.Enabled() {
		log.Printf("Admin token required for write operations")
	} else {
		log.Printf("WARNING: ADMIN_TOKEN_HASH is not set. Write endpoints are open. Run 'admin-token' to create one.")
	}

	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxRequests:    cfg.Auth.SubmissionRateLimit,
		WindowDuration: cfg.Auth.SubmissionRateWindow,
	})

	readOnly := readonly.NewMiddleware(cfg.ReadOnly.Enabled)
	if readOnly.IsEnabled() {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:          db,
		Audit:             auditService,
		Uploads:           uploadService,
		UploadsDir:        uploadsDir,
		Cache:             dashboardCache,
		DashboardCacheTTL: cfg.Cache.DashboardCacheTTL,
		Tasks:             taskClient,
		ShareBaseURL:      cfg.Share.BaseURL,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		AdminGuard:        adminGuard,
		RateLimiter:       rateLimiter,
		ReadOnly:          readOnly,
		HSTSMaxAge:        cfg.HTTP.HSTSMaxAge,
		TrustedProxies:    cfg.HTTP.TrustedProxies,
		Version:           version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if sched != nil {
			sched.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		rateLimiter.Stop()
	}

	Serve(router, cfg, onShutdown)
}
