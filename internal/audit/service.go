package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/naatacademy/naat-api/internal/database/audit"
	"github.com/naatacademy/naat-api/internal/entities"
)

// RequestInfo identifies the client behind a change.
type RequestInfo struct {
	IPAddress string
	UserAgent string
}

// Service provides high-level audit logging functionality.
// A nil *Service is valid and records nothing.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	if s == nil {
		return nil
	}
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogCreate records a new content row.
func (s *Service) LogCreate(entityType string, entityID uint, name string, req RequestInfo) {
	s.logChange(entities.AuditEventCreate, "Created", entityType, entityID, name, req)
}

// LogUpdate records an edit of a content row.
func (s *Service) LogUpdate(entityType string, entityID uint, name string, req RequestInfo) {
	s.logChange(entities.AuditEventUpdate, "Updated", entityType, entityID, name, req)
}

// LogDelete records a deletion. Content rows are soft-deleted.
func (s *Service) LogDelete(entityType string, entityID uint, name string, req RequestInfo) {
	s.logChange(entities.AuditEventDelete, "Deleted", entityType, entityID, name, req)
}

// LogUpload records a stored file.
func (s *Service) LogUpload(key string, size int64, req RequestInfo) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventUpload,
		Action:      "file_upload",
		Description: "Uploaded " + key,
		EntityType:  "upload",
		IPAddress:   req.IPAddress,
		UserAgent:   truncate(req.UserAgent, 500),
		Metadata:    metadata(map[string]any{"key": key, "size": size}),
		Status:      entities.AuditStatusSuccess,
	}
	s.LogAsync(event)
}

// LogReindex records a search-key rebuild.
func (s *Service) LogReindex(entityType string, updated int, took time.Duration, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventReindex,
		Action:      entityType + "_reindex",
		Description: fmt.Sprintf("Rebuilt search keys for %d %s rows", updated, entityType),
		EntityType:  entityType,
		Metadata:    metadata(map[string]any{"updated": updated, "took_ms": took.Milliseconds()}),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// Events returns a page of the audit trail, most recent first.
func (s *Service) Events(limit, offset int) ([]entities.AuditEvent, int64, error) {
	if s == nil {
		return []entities.AuditEvent{}, 0, nil
	}
	return s.repo.GetEvents(limit, offset)
}

// Cleanup removes events older than the retention period.
func (s *Service) Cleanup(retentionDays int) (int64, error) {
	if s == nil || retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteOldEvents(cutoff)
}

func (s *Service) logChange(eventType entities.AuditEventType, verb, entityType string, entityID uint, name string, req RequestInfo) {
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		Description: truncate(verb+" "+entityType+": "+name, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		IPAddress:   req.IPAddress,
		UserAgent:   truncate(req.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

func metadata(values map[string]any) string {
	data, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(data)
}

// truncate shortens a string to maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
