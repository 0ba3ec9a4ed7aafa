// Package records provides soft-delete aware CRUD over the content tables.
//
// Every content table carries an IsDeleted flag. Reads through a Repository
// never return rows with the flag set, and Delete only flips it.
//
// # Usage
//
//	articles := records.NewRepository[entities.Article](db.DB)
//	article, err := articles.Get(42)
//	if errors.Is(err, records.ErrNotFound) {
//	    // absent or soft-deleted
//	}
package records

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/naatacademy/naat-api/internal/entities"
)

// ErrNotFound is returned when a row is absent or soft-deleted.
var ErrNotFound = errors.New("record not found")

// Repository wraps one content table.
type Repository[T any] struct {
	db          *gorm.DB
	primaryKey  string
	deletedFlag string
	newestBy    string
}

// NewRepository creates a repository for the table behind T. The primary key
// column is read from the model schema.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{
		db:          db,
		primaryKey:  primaryKeyOf[T](db),
		deletedFlag: entities.ColumnIsDeleted,
	}
}

func primaryKeyOf[T any](db *gorm.DB) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil || stmt.Schema.PrioritizedPrimaryField == nil {
		return "id"
	}
	return stmt.Schema.PrioritizedPrimaryField.DBName
}

// NewestBy returns a copy of the repository whose lists sort on column,
// newest first, with the primary key breaking ties.
func (r *Repository[T]) NewestBy(column string) *Repository[T] {
	cp := *r
	cp.newestBy = column
	return &cp
}

// PrimaryKey returns the primary key column name.
func (r *Repository[T]) PrimaryKey() string {
	return r.primaryKey
}

// Live returns a query scoped to rows that are not soft-deleted.
func (r *Repository[T]) Live() *gorm.DB {
	return r.db.Model(new(T)).Where(map[string]any{r.deletedFlag: false})
}

// List returns all live rows, newest first.
func (r *Repository[T]) List() ([]T, error) {
	var rows []T
	err := r.Live().Order(r.newestFirst()).Find(&rows).Error
	return rows, err
}

// ListPage returns up to limit live rows starting at offset, newest first.
func (r *Repository[T]) ListPage(limit, offset int) ([]T, error) {
	var rows []T
	if offset < 0 {
		offset = 0
	}
	err := r.Live().Order(r.newestFirst()).Limit(limit).Offset(offset).Find(&rows).Error
	return rows, err
}

// ListWhere returns live rows matching the column/value pairs, newest first.
func (r *Repository[T]) ListWhere(conds map[string]any, limit, offset int) ([]T, error) {
	var rows []T
	query := r.Live().Where(conds).Order(r.newestFirst())
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&rows).Error
	return rows, err
}

// CountWhere counts live rows matching the column/value pairs.
func (r *Repository[T]) CountWhere(conds map[string]any) (int64, error) {
	var count int64
	err := r.Live().Where(conds).Count(&count).Error
	return count, err
}

// Sum adds up a numeric column over live rows.
func (r *Repository[T]) Sum(column string) (int64, error) {
	var total int64
	err := r.Live().
		Select("COALESCE(SUM(?), 0)", clause.Column{Name: column}).
		Scan(&total).Error
	return total, err
}

// ExistsExcept reports whether a live row other than exceptID matches the
// column/value pairs. Pass 0 to check every row.
func (r *Repository[T]) ExistsExcept(conds map[string]any, exceptID uint) (bool, error) {
	var count int64
	query := r.Live().Where(conds)
	if exceptID != 0 {
		query = query.Where(clause.Neq{Column: clause.Column{Name: r.primaryKey}, Value: exceptID})
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Get returns the live row with the given primary key.
func (r *Repository[T]) Get(id uint) (*T, error) {
	var row T
	err := r.Live().Where(map[string]any{r.primaryKey: id}).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", r.primaryKey, err)
	}
	return &row, nil
}

// Create inserts a new row and fills in its primary key.
func (r *Repository[T]) Create(row *T) error {
	return r.db.Create(row).Error
}

// Save writes every column of an existing row.
func (r *Repository[T]) Save(row *T) error {
	return r.db.Save(row).Error
}

// Delete soft-deletes a live row. Deleting an absent or already deleted row
// returns ErrNotFound.
func (r *Repository[T]) Delete(id uint) error {
	result := r.Live().
		Where(map[string]any{r.primaryKey: id}).
		Update(r.deletedFlag, true)
	if result.Error != nil {
		return fmt.Errorf("soft delete %s=%d: %w", r.primaryKey, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of live rows.
func (r *Repository[T]) Count() (int64, error) {
	var count int64
	err := r.Live().Count(&count).Error
	return count, err
}

// SearchColumns returns live rows where any of the columns contains term,
// ordered by the first column.
func (r *Repository[T]) SearchColumns(term string, columns ...string) ([]T, error) {
	var rows []T
	if len(columns) == 0 {
		return rows, nil
	}
	pattern := containsPattern(term)
	matches := make([]clause.Expression, 0, len(columns))
	for _, column := range columns {
		matches = append(matches, like(column, pattern))
	}
	err := r.Live().
		Where(anyOf(matches)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: columns[0]}}).
		Find(&rows).Error
	return rows, err
}

// SearchKeys returns live rows whose SearchKeys column contains any of the
// keys. Rows whose rank columns contain the whole term sort first, in the
// order the rank columns are given, then by Title.
func (r *Repository[T]) SearchKeys(term string, keys []string, rankColumns ...string) ([]T, error) {
	var rows []T
	if len(keys) == 0 {
		return rows, nil
	}

	matches := make([]clause.Expression, 0, len(keys))
	for _, key := range keys {
		matches = append(matches, like(entities.ColumnSearchKeys, containsPattern(key)))
	}

	err := r.Live().
		Where(anyOf(matches)).
		Order(rankOrder(containsPattern(term), rankColumns, entities.ColumnTitle)).
		Find(&rows).Error
	return rows, err
}

// Each walks every live row in primary key order, batchSize rows at a time.
func (r *Repository[T]) Each(batchSize int, fn func(rows []T) error) error {
	var rows []T
	result := r.Live().FindInBatches(&rows, batchSize, func(tx *gorm.DB, batch int) error {
		return fn(rows)
	})
	return result.Error
}

// anyOf ORs the expressions. A single expression is returned as is, since
// gorm joins a one-element OR group to the previous condition with OR.
func anyOf(exprs []clause.Expression) clause.Expression {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return clause.Or(exprs...)
}

// likeEscape marks a literal % or _ in LIKE patterns.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// containsPattern matches text containing term, with its wildcards taken
// literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func like(column, pattern string) clause.Expression {
	return clause.Expr{SQL: "? LIKE ? ESCAPE '" + likeEscape + "'", Vars: []any{clause.Column{Name: column}, pattern}}
}

func (r *Repository[T]) newestFirst() clause.OrderBy {
	columns := []clause.OrderByColumn{desc(r.primaryKey)}
	if r.newestBy != "" && r.newestBy != r.primaryKey {
		columns = append([]clause.OrderByColumn{desc(r.newestBy)}, columns...)
	}
	return clause.OrderBy{Columns: columns}
}

func desc(column string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: true}
}

// rankOrder builds "CASE WHEN c1 LIKE p THEN 1 ... ELSE n END, tie" as one
// ORDER BY expression. Chained Order calls would drop the expression.
func rankOrder(pattern string, columns []string, tie string) clause.OrderBy {
	if len(columns) == 0 {
		return clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: tie}}}}
	}
	sql := "CASE"
	vars := make([]any, 0, len(columns)*2+1)
	for i, column := range columns {
		sql += fmt.Sprintf(" WHEN ? LIKE ? ESCAPE '%s' THEN %d", likeEscape, i+1)
		vars = append(vars, clause.Column{Name: column}, pattern)
	}
	sql += fmt.Sprintf(" ELSE %d END, ?", len(columns)+1)
	vars = append(vars, clause.Column{Name: tie})
	return clause.OrderBy{Expression: clause.Expr{SQL: sql, Vars: vars, WithoutParentheses: true}}
}
