package search

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/database/records"
	"github.com/naatacademy/naat-api/internal/entities"
)

// Entities whose SearchKeys can be rebuilt.
const (
	EntityArticle = "article"
	EntityKalaam  = "kalaam"
)

// DefaultBatchSize is the number of rows loaded per rebuild query.
const DefaultBatchSize = 200

// Reindexer recomputes stored SearchKeys, for rows written before the
// tokenizer changed or imported straight into the database.
type Reindexer struct {
	db        *gorm.DB
	audit     *audit.Service
	batchSize int
}

func NewReindexer(db *gorm.DB, auditService *audit.Service, batchSize int) *Reindexer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Reindexer{db: db, audit: auditService, batchSize: batchSize}
}

// Entities lists what Rebuild accepts.
func Entities() []string {
	return []string{EntityArticle, EntityKalaam}
}

// Rebuild recomputes SearchKeys for one entity, or for all of them when
// entity is empty. It returns the number of rows whose keys changed.
func (r *Reindexer) Rebuild(ctx context.Context, entity string) (int, error) {
	if entity == "" {
		total := 0
		for _, e := range Entities() {
			n, err := r.Rebuild(ctx, e)
			total += n
			if err != nil {
				return total, err
			}
		}
		return total, nil
	}

	start := time.Now()
	var updated int
	var err error

	switch entity {
	case EntityArticle:
		updated, err = rebuild(ctx, r, func(a *entities.Article) (uint, string, []string) {
			return a.ArticleID, a.SearchKeys, a.SearchableText()
		})
	case EntityKalaam:
		updated, err = rebuild(ctx, r, func(k *entities.Kalaam) (uint, string, []string) {
			return k.KalaamID, k.SearchKeys, k.SearchableText()
		})
	default:
		return 0, fmt.Errorf("unknown search entity %q", entity)
	}

	took := time.Since(start)
	r.audit.LogReindex(entity, updated, took, err)
	if err != nil {
		return updated, fmt.Errorf("rebuild %s search keys: %w", entity, err)
	}

	log.Printf("Rebuilt search keys for %d %s rows in %v", updated, entity, took)
	return updated, nil
}

// rebuild walks the live rows of T and rewrites SearchKeys where the stored
// value is stale. UpdatedOn is left alone.
func rebuild[T any](ctx context.Context, r *Reindexer, fields func(*T) (id uint, current string, text []string)) (int, error) {
	repo := records.NewRepository[T](r.db)
	updated := 0

	err := repo.Each(r.batchSize, func(rows []T) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range rows {
			id, current, text := fields(&rows[i])
			keys := RecordKeys(text...)
			if keys == current {
				continue
			}
			err := r.db.Model(new(T)).
				Where(map[string]any{repo.PrimaryKey(): id}).
				UpdateColumn(entities.ColumnSearchKeys, keys).Error
			if err != nil {
				return fmt.Errorf("update %s=%d: %w", repo.PrimaryKey(), id, err)
			}
			updated++
		}
		return nil
	})

	return updated, err
}
