package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/database/records"
	"github.com/naatacademy/naat-api/internal/entities"
	"github.com/naatacademy/naat-api/internal/search"
)

// searchRank orders search hits: Title matches, then writer, then category.
var searchRank = []string{entities.ColumnTitle, entities.ColumnWriterName, entities.ColumnCategory}

type ArticlesController struct {
	resource[entities.Article]
}

func NewArticlesController(repo *records.Repository[entities.Article], auditService *audit.Service) *ArticlesController {
	return &ArticlesController{resource[entities.Article]{
		entity:   "article",
		label:    "Article",
		idField:  "ArticleID",
		store:    repo,
		required: []string{"Title", "WriterID", "CategoryID"},
		id:       func(a *entities.Article) uint { return a.ArticleID },
		name:     func(a *entities.Article) string { return a.Title },
		search: func(term string) ([]entities.Article, error) {
			term = search.Normalize(term)
			return repo.SearchKeys(term, search.Keys(term), searchRank...)
		},
		prepare: func(_ *gin.Context, a *entities.Article, _ uint) bool {
			a.SearchKeys = search.RecordKeys(a.SearchableText()...)
			return true
		},
		audit: auditService,
	}}
}

// Edit handles GET /api/articles/:id/edit and wraps the row the way the
// admin editor expects it.
func (ac *ArticlesController) Edit(c *gin.Context) {
	article, ok := ac.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"article": article,
		"success": true,
	})
}

func (ac *ArticlesController) RegisterRoutes(group *gin.RouterGroup) {
	ac.registerRoutes(group)
	group.GET("/limited", ac.Limited)
	group.GET("/:id/edit", ac.Edit)
}
