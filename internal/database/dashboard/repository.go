// Package dashboard aggregates counts and recent activity across the content
// tables for the admin dashboard.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/naatacademy/naat-api/internal/entities"
)

// Activity kinds, matching the keys of the recent activity response.
const (
	KindPoetry   = "poetry"
	KindBooks    = "books"
	KindArticles = "articles"
)

// Stats holds live row counts per content table.
type Stats struct {
	Articles   int64 `json:"articles"`
	Writers    int64 `json:"writers"`
	Poetry     int64 `json:"poetry"`
	Books      int64 `json:"books"`
	Sections   int64 `json:"sections"`
	Categories int64 `json:"categories"`
	Groups     int64 `json:"groups"`
	Topics     int64 `json:"topics"`
}

// Activity is one recently added piece of content.
type Activity struct {
	Kind      string
	Title     string
	Author    string
	Category  string
	CreatedOn time.Time
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Stats counts live rows in every content table.
func (r *Repository) Stats() (Stats, error) {
	var stats Stats
	counts := []struct {
		model any
		dest  *int64
	}{
		{&entities.Article{}, &stats.Articles},
		{&entities.Writer{}, &stats.Writers},
		{&entities.Kalaam{}, &stats.Poetry},
		{&entities.Book{}, &stats.Books},
		{&entities.Section{}, &stats.Sections},
		{&entities.Category{}, &stats.Categories},
		{&entities.Group{}, &stats.Groups},
		{&entities.Topic{}, &stats.Topics},
	}

	for _, c := range counts {
		err := r.db.Model(c.model).
			Where(map[string]any{entities.ColumnIsDeleted: false}).
			Count(c.dest).Error
		if err != nil {
			return Stats{}, fmt.Errorf("count %T: %w", c.model, err)
		}
	}
	return stats, nil
}

// Recent returns the newest limit items across kalaam, books and articles.
func (r *Repository) Recent(limit int) ([]Activity, error) {
	if limit <= 0 {
		return nil, nil
	}

	var kalaam []entities.Kalaam
	if err := r.newest(&entities.Kalaam{}, limit).Find(&kalaam).Error; err != nil {
		return nil, fmt.Errorf("recent kalaam: %w", err)
	}
	var books []entities.Book
	if err := r.newest(&entities.Book{}, limit).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("recent books: %w", err)
	}
	var articles []entities.Article
	if err := r.newest(&entities.Article{}, limit).Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("recent articles: %w", err)
	}

	activity := make([]Activity, 0, len(kalaam)+len(books)+len(articles))
	for _, k := range kalaam {
		activity = append(activity, Activity{KindPoetry, k.Title, k.WriterName, k.CategoryName, k.CreatedOn})
	}
	for _, b := range books {
		activity = append(activity, Activity{KindBooks, b.Title, b.AuthorName, b.CategoryName, b.CreatedOn})
	}
	for _, a := range articles {
		activity = append(activity, Activity{KindArticles, a.Title, a.WriterName, a.CategoryName, a.CreatedOn})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].CreatedOn.After(activity[j].CreatedOn)
	})
	if len(activity) > limit {
		activity = activity[:limit]
	}
	return activity, nil
}

func (r *Repository) newest(model any, limit int) *gorm.DB {
	return r.db.Model(model).
		Where(map[string]any{entities.ColumnIsDeleted: false}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: entities.ColumnCreatedOn}, Desc: true}).
		Limit(limit)
}
