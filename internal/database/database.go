package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/naatacademy/naat-api/internal/entities"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config describes how to reach the content database.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string // sqlite file, used when Driver is "sqlite"
	LogLevel string // silent, error, warn, info

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type Database struct {
	DB     *gorm.DB
	Driver string
}

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&entities.Article{},
		&entities.Kalaam{},
		&entities.Writer{},
		&entities.Book{},
		&entities.Category{},
		&entities.Group{},
		&entities.Section{},
		&entities.Topic{},
		&entities.Language{},
		&entities.BazmeDurood{},
		&entities.MazmoonSubmission{},
		&entities.KalamSubmission{},
		&entities.AuditEvent{},
	}
}

func NewDatabase(cfg Config) (*Database, error) {
	setDefaults(&cfg)

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: getLogger(cfg.LogLevel),
		// Columns and tables keep the PascalCase names of the existing schema.
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
			NoLowerCase:   true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully (%s)", describe(cfg))

	return &Database{DB: db, Driver: cfg.Driver}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverMySQL:
		// utf8mb4 is required for Urdu and Arabic content.
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		return mysql.Open(dsn), nil
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func setDefaults(c *Config) {
	if c.Driver == "" {
		c.Driver = DriverMySQL
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		switch c.Driver {
		case DriverPostgres:
			c.Port = 5432
		default:
			c.Port = 3306
		}
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = time.Hour
	}
}

func describe(c Config) string {
	if c.Driver == DriverSQLite {
		return "sqlite at " + c.Path
	}
	return fmt.Sprintf("%s at %s:%d/%s", c.Driver, c.Host, c.Port, c.Name)
}

func getLogger(level string) logger.Interface {
	switch level {
	case "silent":
		return logger.Default.LogMode(logger.Silent)
	case "error":
		return logger.Default.LogMode(logger.Error)
	case "warn":
		return logger.Default.LogMode(logger.Warn)
	default:
		return logger.Default.LogMode(logger.Info)
	}
}
