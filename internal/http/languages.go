package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/entities"
)

// LanguageStore adds the name uniqueness check to the catalog store.
type LanguageStore interface {
	CatalogStore[entities.Language]
	ExistsExcept(conds map[string]any, exceptID uint) (bool, error)
}

// LanguagesController serves /api/languages. Names are unique among live
// languages.
type LanguagesController struct {
	resource[entities.Language]
}

func NewLanguagesController(store LanguageStore, auditService *audit.Service) *LanguagesController {
	return &LanguagesController{resource[entities.Language]{
		entity:   "language",
		label:    "Language",
		idField:  "LanguageID",
		store:    store,
		required: []string{"LanguageName"},
		id:       func(l *entities.Language) uint { return l.LanguageID },
		name:     func(l *entities.Language) string { return l.LanguageName },
		search:   columnSearch[entities.Language](store, "LanguageName", "Description"),
		prepare: func(c *gin.Context, l *entities.Language, id uint) bool {
			l.LanguageName = strings.TrimSpace(l.LanguageName)
			taken, err := store.ExistsExcept(map[string]any{"LanguageName": l.LanguageName}, id)
			if err != nil {
				respondInternalError(c, err, "check language name")
				return false
			}
			if taken {
				respondBadRequest(c, "language already exists")
				return false
			}
			return true
		},
		audit: auditService,
	}}
}

func (lc *LanguagesController) RegisterRoutes(group *gin.RouterGroup) {
	lc.registerRoutes(group)
}
