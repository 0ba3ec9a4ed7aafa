package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/naatacademy/naat-api/internal/database"
	"github.com/naatacademy/naat-api/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewDatabase(database.Config{
		Driver:   database.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "audit.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.DB
}

func uintPtr(v uint) *uint {
	return &v
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "article_create",
		Description: "Created article: Ya Nabi",
		EntityType:  "article",
		EntityID:    uintPtr(1),
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 15; i++ {
		err := repo.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventUpdate,
			Action:    "kalaam_update",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		})
		require.NoError(t, err)
	}

	t.Run("first page", func(t *testing.T) {
		events, total, err := repo.GetEvents(10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 10)
		assert.True(t, events[0].CreatedAt.After(events[1].CreatedAt), "newest first")
	})

	t.Run("second page", func(t *testing.T) {
		events, total, err := repo.GetEvents(10, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 5)
	})

	t.Run("default limit", func(t *testing.T) {
		events, _, err := repo.GetEvents(0, 0)
		require.NoError(t, err)
		assert.Len(t, events, 15)
	})
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventCreate, EntityType: "book", EntityID: uintPtr(3)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventDelete, EntityType: "book", EntityID: uintPtr(3)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventCreate, EntityType: "book", EntityID: uintPtr(4)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventCreate, EntityType: "writer", EntityID: uintPtr(3)}))

	events, total, err := repo.GetEventsForEntity("book", 3, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, events, 2)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "recent"}))

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := repo.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "recent", events[0].Action)
}
