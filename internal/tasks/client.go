package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client runs the background queues (search-key rebuilds, audit cleanup) on
// a SQLite file of their own, whichever driver serves content.
type Client struct {
	queue  *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.RWMutex
	running bool
}

// PathBeside names the queue file after a SQLite content database:
// naat.db becomes naat-tasks.db in the same directory.
func PathBeside(contentDBPath string) string {
	ext := filepath.Ext(contentDBPath)
	return strings.TrimSuffix(contentDBPath, ext) + "-tasks" + ext
}

func NewClient(path string, cfg Config) (*Client, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create task queue dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open task queue database: %w", err)
	}
	// Every worker may hold a connection while the dispatcher polls.
	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err == nil {
		err = queue.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("set up task queue: %w", err)
	}

	return &Client{queue: queue, db: db, config: cfg}, nil
}

// Register adds queues. Call it before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.queue.Register(q)
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	log.Printf("Task queue: %d workers", c.config.Workers)
	c.queue.Start(ctx)
}

// Stop waits for running tasks until ctx expires. It reports whether every
// worker finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	running := c.running
	c.mu.RUnlock()
	if !running {
		return true
	}

	drained := c.queue.Stop(ctx)
	if drained {
		log.Println("Task queue: stopped")
	} else {
		log.Println("Task queue: stopped before all tasks finished")
	}
	return drained
}

// Close releases the queue database. Call Stop first.
func (c *Client) Close() error {
	return c.db.Close()
}

// Enqueue stores tasks for the workers and returns their ids.
func (c *Client) Enqueue(tasks ...backlite.Task) ([]string, error) {
	ids, err := c.queue.Add(tasks...).Save()
	if err != nil {
		return nil, fmt.Errorf("enqueue: %w", err)
	}
	return ids, nil
}

func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.queue.Status(ctx, taskID)
}

type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
