package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type StorageBackend string

const (
	StorageLocal StorageBackend = "local" // files under UPLOADS_DIR, served at /uploads (default)
	StorageS3    StorageBackend = "s3"    // S3-compatible bucket
)

type (
	Config struct {
		HTTP
		Database
		CORS
		Uploads
		Storage
		Cache
		Tasks
		Search
		Audit
		Auth
		Global
		Share
		ReadOnly
	}

	HTTP struct {
		Port       int32
		Host       string
		HSTSMaxAge int // seconds; 0 disables the header
		// TrustedProxies may set X-Forwarded-For. Empty trusts no proxy, so
		// clients are identified by their connection address.
		TrustedProxies []string
	}
	Database struct {
		Driver          string // mysql, postgres or sqlite
		Host            string
		Port            int
		User            string
		Password        string
		Name            string
		Path            string // sqlite file
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
		LogLevel        string
	}
	CORS struct {
		AllowedOrigins []string
	}
	Uploads struct {
		Dir string
		// PublicBaseURL is the public URL of this API, used to build the URLs
		// of locally stored files.
		PublicBaseURL string
	}
	Storage struct {
		Backend         StorageBackend
		S3Bucket        string
		S3Region        string
		S3Endpoint      string
		S3AccessKeyID   string
		S3SecretKey     string
		S3UsePathStyle  bool
		S3PublicBaseURL string
	}
	Cache struct {
		RedisAddr         string
		RedisPassword     string
		RedisDB           int
		DashboardCacheTTL time.Duration
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Search struct {
		ReindexSchedule  string // cron; empty disables
		ReindexBatchSize int
	}
	Audit struct {
		CleanupSchedule string // cron; empty disables
		RetentionDays   int
	}
	Auth struct {
		AdminTokenHash       string // bcrypt hash; empty disables the guard
		BcryptCost           int
		SubmissionRateLimit  int
		SubmissionRateWindow time.Duration
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Share struct {
		BaseURL string
	}
	ReadOnly struct {
		Enabled bool
	}
)

// LoadDotEnv reads a .env file into the environment when one exists.
// Variables already set take precedence.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}
}

// splitList parses a comma separated value, dropping blanks.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("hsts_max_age", 0)
	v.SetDefault("trusted_proxies", "")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Database defaults
	v.SetDefault("db_driver", "mysql")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 0) // driver default
	v.SetDefault("db_user", "root")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", DefaultDatabaseName)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", "1h")
	v.SetDefault("db_log_level", "warn")

	v.SetDefault("allowed_origins", strings.Join(DefaultAllowedOrigins, ","))

	// Upload and storage defaults
	v.SetDefault("uploads_dir", "./uploads")
	v.SetDefault("public_base_url", "http://localhost:3000")
	v.SetDefault("storage_backend", string(StorageLocal))
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_use_path_style", false)

	// Cache defaults
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("dashboard_cache_ttl", "60s")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", "") // beside a SQLite content file, else DefaultTasksDatabasePath
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("search_reindex_schedule", "")
	v.SetDefault("search_reindex_batch_size", 200)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("audit_retention_days", 90)

	// Auth defaults
	v.SetDefault("admin_token_hash", "")
	v.SetDefault("admin_bcrypt_cost", 12)
	v.SetDefault("submission_rate_limit", 10)     // Submissions per window per IP
	v.SetDefault("submission_rate_window", "1h") // Window for counting submissions

	v.SetDefault("share_base_url", "https://naatacademy.com")
	v.SetDefault("read_only_mode", false)

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			HSTSMaxAge:     v.GetInt("HSTS_MAX_AGE"),
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Database: Database{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			Path:            v.GetString("DATABASE_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		Uploads: Uploads{
			Dir:           v.GetString("UPLOADS_DIR"),
			PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		},
		Storage: Storage{
			Backend:         StorageBackend(strings.ToLower(v.GetString("STORAGE_BACKEND"))),
			S3Bucket:        v.GetString("S3_BUCKET"),
			S3Region:        v.GetString("S3_REGION"),
			S3Endpoint:      v.GetString("S3_ENDPOINT"),
			S3AccessKeyID:   v.GetString("S3_ACCESS_KEY_ID"),
			S3SecretKey:     v.GetString("S3_SECRET_ACCESS_KEY"),
			S3UsePathStyle:  v.GetBool("S3_USE_PATH_STYLE"),
			S3PublicBaseURL: v.GetString("S3_PUBLIC_BASE_URL"),
		},
		Cache: Cache{
			RedisAddr:         v.GetString("REDIS_ADDR"),
			RedisPassword:     v.GetString("REDIS_PASSWORD"),
			RedisDB:           v.GetInt("REDIS_DB"),
			DashboardCacheTTL: v.GetDuration("DASHBOARD_CACHE_TTL"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Search: Search{
			ReindexSchedule:  v.GetString("SEARCH_REINDEX_SCHEDULE"),
			ReindexBatchSize: v.GetInt("SEARCH_REINDEX_BATCH_SIZE"),
		},
		Audit: Audit{
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Auth: Auth{
			AdminTokenHash:       v.GetString("ADMIN_TOKEN_HASH"),
			BcryptCost:           v.GetInt("ADMIN_BCRYPT_COST"),
			SubmissionRateLimit:  v.GetInt("SUBMISSION_RATE_LIMIT"),
			SubmissionRateWindow: v.GetDuration("SUBMISSION_RATE_WINDOW"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Share: Share{
			BaseURL: v.GetString("SHARE_BASE_URL"),
		},
		ReadOnly: ReadOnly{
			Enabled: v.GetBool("READ_ONLY_MODE"),
		},
	}
}
