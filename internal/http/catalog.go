package http

import (
	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/entities"
	"github.com/naatacademy/naat-api/internal/uploads"
)

// CatalogStore is the store behind the reference tables (writers, books,
// categories, groups, sections, topics and languages), which search with a
// plain LIKE over named columns.
type CatalogStore[T any] interface {
	ContentStore[T]
	SearchColumns(term string, columns ...string) ([]T, error)
}

func columnSearch[T any](store CatalogStore[T], columns ...string) func(string) ([]T, error) {
	return func(term string) ([]T, error) {
		return store.SearchColumns(term, columns...)
	}
}

type WritersController struct {
	resource[entities.Writer]
}

func NewWritersController(store CatalogStore[entities.Writer], uploadService *uploads.Service, auditService *audit.Service) *WritersController {
	return &WritersController{resource[entities.Writer]{
		entity:   "writer",
		label:    "Writer",
		idField:  "WriterID",
		store:    store,
		required: []string{"Name", "LanguageID"},
		images: []imageField[entities.Writer]{
			{part: "image", kind: uploads.Image, url: func(w *entities.Writer) *string { return &w.ProfileImageURL }},
		},
		id:      func(w *entities.Writer) uint { return w.WriterID },
		name:    func(w *entities.Writer) string { return w.Name },
		search:  columnSearch(store, "Name", "Bio"),
		uploads: uploadService,
		audit:   auditService,
	}}
}

func (wc *WritersController) RegisterRoutes(group *gin.RouterGroup) {
	wc.registerRoutes(group)
	group.GET("/limited", wc.Limited)
}

type BooksController struct {
	resource[entities.Book]
}

func NewBooksController(store CatalogStore[entities.Book], uploadService *uploads.Service, auditService *audit.Service) *BooksController {
	return &BooksController{resource[entities.Book]{
		entity:   "book",
		label:    "Book",
		idField:  "BookID",
		store:    store,
		required: []string{"Title", "AuthorID", "LanguageID", "CategoryID"},
		images: []imageField[entities.Book]{
			{part: "image", kind: uploads.Image, url: func(b *entities.Book) *string { return &b.CoverImageURL }},
			{part: "pdf", kind: uploads.PDF, url: func(b *entities.Book) *string { return &b.PDFURL }},
		},
		id:      func(b *entities.Book) uint { return b.BookID },
		name:    func(b *entities.Book) string { return b.Title },
		search:  columnSearch(store, "Title", "AuthorName"),
		uploads: uploadService,
		audit:   auditService,
	}}
}

func (bc *BooksController) RegisterRoutes(group *gin.RouterGroup) {
	bc.registerRoutes(group)
}

type CategoriesController struct {
	resource[entities.Category]
}

func NewCategoriesController(store CatalogStore[entities.Category], auditService *audit.Service) *CategoriesController {
	return &CategoriesController{resource[entities.Category]{
		entity:   "category",
		label:    "Category",
		idField:  "CategoryID",
		store:    store,
		required: []string{"Name", "Slug"},
		id:       func(c *entities.Category) uint { return c.CategoryID },
		name:     func(c *entities.Category) string { return c.Name },
		search:   columnSearch(store, "Name", "Description"),
		audit:    auditService,
	}}
}

func (cc *CategoriesController) RegisterRoutes(group *gin.RouterGroup) {
	cc.registerRoutes(group)
}

type TopicsController struct {
	resource[entities.Topic]
}

func NewTopicsController(store CatalogStore[entities.Topic], auditService *audit.Service) *TopicsController {
	return &TopicsController{resource[entities.Topic]{
		entity:   "topic",
		label:    "Topic",
		idField:  "TopicID",
		store:    store,
		required: []string{"Title", "CategoryID", "Slug"},
		id:       func(t *entities.Topic) uint { return t.TopicID },
		name:     func(t *entities.Topic) string { return t.Title },
		search:   columnSearch(store, "Title", "Description"),
		audit:    auditService,
	}}
}

func (tc *TopicsController) RegisterRoutes(group *gin.RouterGroup) {
	tc.registerRoutes(group)
}

// GroupsController serves /api/groups. A new image replaces and removes the
// stored one.
type GroupsController struct {
	resource[entities.Group]
}

func NewGroupsController(store CatalogStore[entities.Group], uploadService *uploads.Service, auditService *audit.Service) *GroupsController {
	return &GroupsController{resource[entities.Group]{
		entity:   "group",
		label:    "Group",
		idField:  "GroupID",
		store:    store,
		required: []string{"GroupName"},
		images: []imageField[entities.Group]{
			{part: "image", kind: uploads.Image, url: func(g *entities.Group) *string { return &g.GroupImageURL }, replace: true},
		},
		id:      func(g *entities.Group) uint { return g.GroupID },
		name:    func(g *entities.Group) string { return g.GroupName },
		search:  columnSearch(store, "GroupName", "GroupDescription"),
		uploads: uploadService,
		audit:   auditService,
	}}
}

func (gc *GroupsController) RegisterRoutes(group *gin.RouterGroup) {
	gc.registerRoutes(group)
}

type SectionsController struct {
	resource[entities.Section]
}

func NewSectionsController(store CatalogStore[entities.Section], uploadService *uploads.Service, auditService *audit.Service) *SectionsController {
	return &SectionsController{resource[entities.Section]{
		entity:   "section",
		label:    "Section",
		idField:  "SectionID",
		store:    store,
		required: []string{"SectionName"},
		images: []imageField[entities.Section]{
			{part: "image", kind: uploads.Image, url: func(s *entities.Section) *string { return &s.SectionImageURL }, replace: true},
		},
		id:      func(s *entities.Section) uint { return s.SectionID },
		name:    func(s *entities.Section) string { return s.SectionName },
		search:  columnSearch(store, "SectionName", "SectionDescription"),
		uploads: uploadService,
		audit:   auditService,
	}}
}

func (sc *SectionsController) RegisterRoutes(group *gin.RouterGroup) {
	sc.registerRoutes(group)
}
