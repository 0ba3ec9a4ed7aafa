package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/entities"
	"github.com/naatacademy/naat-api/internal/search"
)

const defaultBookPageSize = 20

// KalaamStore adds the featured and per-book queries to the common store.
type KalaamStore interface {
	ContentStore[entities.Kalaam]
	ListWhere(conds map[string]any, limit, offset int) ([]entities.Kalaam, error)
	CountWhere(conds map[string]any) (int64, error)
	SearchKeys(term string, keys []string, rankColumns ...string) ([]entities.Kalaam, error)
}

type KalaamController struct {
	resource[entities.Kalaam]
	kalaam KalaamStore
}

func NewKalaamController(store KalaamStore, auditService *audit.Service) *KalaamController {
	return &KalaamController{
		resource: resource[entities.Kalaam]{
			entity:   "kalaam",
			label:    "Kalaam",
			idField:  "KalaamID",
			store:    store,
			required: []string{"Title", "WriterID", "CategoryID"},
			id:       func(k *entities.Kalaam) uint { return k.KalaamID },
			name:     func(k *entities.Kalaam) string { return k.Title },
			search: func(term string) ([]entities.Kalaam, error) {
				term = search.Normalize(term)
				return store.SearchKeys(term, search.Keys(term), searchRank...)
			},
			prepare: func(_ *gin.Context, k *entities.Kalaam, _ uint) bool {
				k.SearchKeys = search.RecordKeys(k.SearchableText()...)
				return true
			},
			audit: auditService,
		},
		kalaam: store,
	}
}

// Featured handles GET /api/kalaam/featured. Featured kalaam are grouped by
// their group name; rows without a group land under "".
func (kc *KalaamController) Featured(c *gin.Context) {
	rows, err := kc.kalaam.ListWhere(map[string]any{"IsFeatured": true}, 0, 0)
	if err != nil {
		respondInternalError(c, err, "featured kalaam")
		return
	}

	grouped := make(map[string][]entities.Kalaam)
	for _, k := range rows {
		grouped[k.GroupName] = append(grouped[k.GroupName], k)
	}
	c.JSON(http.StatusOK, grouped)
}

// ByBook handles GET /api/kalaam/book/:bookId?limit=&offset=
func (kc *KalaamController) ByBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	limit, ok := parseCount(c, "limit", defaultBookPageSize, maxPageSize)
	if !ok {
		return
	}
	offset, ok := parseCount(c, "offset", 0, 0)
	if !ok {
		return
	}

	conds := map[string]any{"BookID": bookID}
	total, err := kc.kalaam.CountWhere(conds)
	if err != nil {
		respondInternalError(c, err, "count kalaam by book")
		return
	}
	rows := []entities.Kalaam{}
	if limit > 0 {
		rows, err = kc.kalaam.ListWhere(conds, limit, offset)
		if err != nil {
			respondInternalError(c, err, "kalaam by book")
			return
		}
	}

	c.JSON(http.StatusOK, newPaginatedResponse(nonNil(rows), total, limit, offset))
}

func (kc *KalaamController) RegisterRoutes(group *gin.RouterGroup) {
	kc.registerRoutes(group)
	group.GET("/limited", kc.Limited)
	group.GET("/featured", kc.Featured)
	group.GET("/sectionone", kc.Featured)
	group.GET("/book/:bookId", kc.ByBook)
}
