package audit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/naatacademy/naat-api/internal/database"
	auditRepo "github.com/naatacademy/naat-api/internal/database/audit"
	"github.com/naatacademy/naat-api/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := database.NewDatabase(database.Config{
		Driver:   database.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "audit.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(auditRepo.NewRepository(db.DB)), db.DB
}

// waitForAction polls until the async writer has stored an event with the
// given action.
func waitForAction(t *testing.T, db *gorm.DB, action string) entities.AuditEvent {
	t.Helper()

	var event entities.AuditEvent
	require.Eventually(t, func() bool {
		return db.Where(map[string]any{"Action": action}).First(&event).Error == nil
	}, 2*time.Second, 10*time.Millisecond)
	return event
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "test_create",
		Description: "Test event",
		Status:      entities.AuditStatusSuccess,
	}

	require.NoError(t, svc.Log(event))

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, "test_create", saved.Action)
}

func TestService_LogChanges(t *testing.T) {
	svc, db := setupTestService(t)
	req := RequestInfo{IPAddress: "10.0.0.1", UserAgent: "curl/8.0"}

	t.Run("create", func(t *testing.T) {
		svc.LogCreate("article", 5, "Ya Nabi", req)

		event := waitForAction(t, db, "article_create")
		assert.Equal(t, entities.AuditEventCreate, event.EventType)
		assert.Equal(t, "Created article: Ya Nabi", event.Description)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, uint(5), *event.EntityID)
		assert.Equal(t, "10.0.0.1", event.IPAddress)
	})

	t.Run("update", func(t *testing.T) {
		svc.LogUpdate("writer", 2, "Raza", req)

		event := waitForAction(t, db, "writer_update")
		assert.Equal(t, "Updated writer: Raza", event.Description)
	})

	t.Run("delete", func(t *testing.T) {
		svc.LogDelete("kalaam", 9, "Salam", req)

		event := waitForAction(t, db, "kalaam_delete")
		assert.Equal(t, entities.AuditEventDelete, event.EventType)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	})
}

func TestService_LogReindex(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("success", func(t *testing.T) {
		svc.LogReindex("article", 12, 30*time.Millisecond, nil)

		event := waitForAction(t, db, "article_reindex")
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Contains(t, event.Metadata, `"updated":12`)
	})

	t.Run("failure", func(t *testing.T) {
		svc.LogReindex("kalaam", 0, time.Millisecond, errors.New("database is locked"))

		event := waitForAction(t, db, "kalaam_reindex")
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "database is locked")
	})
}

func TestService_LogUpload(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogUpload("1700000000000-abc.png", 2048, RequestInfo{})

	event := waitForAction(t, db, "file_upload")
	assert.Equal(t, entities.AuditEventUpload, event.EventType)
	assert.Contains(t, event.Metadata, `"size":2048`)
}

func TestService_EventsAndCleanup(t *testing.T) {
	svc, _ := setupTestService(t)

	require.NoError(t, svc.Log(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().AddDate(0, 0, -40)}))
	require.NoError(t, svc.Log(&entities.AuditEvent{Action: "new"}))

	deleted, err := svc.Cleanup(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := svc.Events(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "new", events[0].Action)
}

func TestService_NilIsNoop(t *testing.T) {
	var svc *Service

	assert.NotPanics(t, func() {
		svc.LogCreate("article", 1, "x", RequestInfo{})
		svc.LogReindex("article", 0, 0, nil)
	})
	assert.NoError(t, svc.Log(&entities.AuditEvent{}))

	events, total, err := svc.Events(10, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Zero(t, total)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "نع", truncate("نعت", 2))
	assert.Equal(t, 500, len([]rune(truncate(strings.Repeat("x", 600), 500))))
}
