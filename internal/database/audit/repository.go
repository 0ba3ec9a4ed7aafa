// Package audit stores the audit trail of content changes.
package audit

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/naatacademy/naat-api/internal/entities"
)

var newestFirst = clause.OrderByColumn{Column: clause.Column{Name: "CreatedAt"}, Desc: true}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// GetEvents retrieves paginated audit events, most recent first.
func (r *Repository) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return r.page(r.db.Model(&entities.AuditEvent{}), limit, offset)
}

// GetEventsForEntity retrieves the history of a single row, most recent first.
func (r *Repository) GetEventsForEntity(entityType string, entityID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	query := r.db.Model(&entities.AuditEvent{}).
		Where(map[string]any{"EntityType": entityType, "EntityID": entityID})
	return r.page(query, limit, offset)
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	result := r.db.
		Where(clause.Lt{Column: clause.Column{Name: "CreatedAt"}, Value: olderThan}).
		Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}

func (r *Repository) page(query *gorm.DB, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order(newestFirst).Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}
