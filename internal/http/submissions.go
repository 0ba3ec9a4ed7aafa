package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/entities"
)

const (
	defaultApprovedLimit = 3
	defaultBazmPageSize  = 20
)

// SubmissionStore is the store behind the public form tables.
type SubmissionStore[T any] interface {
	ContentStore[T]
	ListWhere(conds map[string]any, limit, offset int) ([]T, error)
	Count() (int64, error)
}

// BazmeDuroodStore adds the durood total to the submission store.
type BazmeDuroodStore interface {
	SubmissionStore[entities.BazmeDurood]
	Sum(column string) (int64, error)
}

// BazmeDuroodController serves /api/bazmedurood. Entries are public and
// listed newest first.
type BazmeDuroodController struct {
	resource[entities.BazmeDurood]
	entries BazmeDuroodStore
}

func NewBazmeDuroodController(store BazmeDuroodStore, auditService *audit.Service) *BazmeDuroodController {
	return &BazmeDuroodController{
		resource: resource[entities.BazmeDurood]{
			entity:   "bazmedurood",
			label:    "Entry",
			idField:  "id",
			store:    store,
			required: []string{"full_name_roman", "durood_count"},
			id:       func(b *entities.BazmeDurood) uint { return b.ID },
			name:     func(b *entities.BazmeDurood) string { return b.FullNameRoman },
			audit:    auditService,
		},
		entries: store,
	}
}

// WithLimit handles GET /api/bazmedurood/limit/:limit
func (bc *BazmeDuroodController) WithLimit(c *gin.Context) {
	limit, ok := parseCountParam(c, "limit", defaultBazmPageSize, maxPageSize)
	if !ok {
		return
	}
	rows, err := bc.entries.ListPage(limit, 0)
	if err != nil {
		respondInternalError(c, err, "bazmedurood limit")
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// Paginate handles GET /api/bazmedurood/paginate?limit=&offset=
func (bc *BazmeDuroodController) Paginate(c *gin.Context) {
	limit, ok := parseCount(c, "limit", defaultBazmPageSize, maxPageSize)
	if !ok {
		return
	}
	offset, ok := parseCount(c, "offset", 0, 0)
	if !ok {
		return
	}
	rows, err := bc.entries.ListPage(limit, offset)
	if err != nil {
		respondInternalError(c, err, "bazmedurood page")
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// TotalCount handles GET /api/bazmedurood/total-count
func (bc *BazmeDuroodController) TotalCount(c *gin.Context) {
	entries, err := bc.entries.Count()
	if err != nil {
		respondInternalError(c, err, "bazmedurood count")
		return
	}
	durood, err := bc.entries.Sum("durood_count")
	if err != nil {
		respondInternalError(c, err, "bazmedurood total")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_entries":      entries,
		"total_durood_count": durood,
	})
}

func (bc *BazmeDuroodController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", bc.Create)
	group.GET("", bc.List)
	group.GET("/id/:id", bc.Get)
	group.GET("/limit/:limit", bc.WithLimit)
	group.GET("/paginate", bc.Paginate)
	group.GET("/total-count", bc.TotalCount)
}

// SubmissionController serves one review queue: mazmoon or kalam
// submissions. The public form posts to the singular path; the admin panel
// manages entries under the plural one.
type SubmissionController[T any] struct {
	resource[T]
	submissions SubmissionStore[T]
}

func newSubmissionController[T any](r resource[T], store SubmissionStore[T], unapprove func(*T)) *SubmissionController[T] {
	r.store = store
	r.idField = "id"
	r.prepare = func(_ *gin.Context, row *T, id uint) bool {
		// New submissions always wait for review.
		if id == 0 {
			unapprove(row)
		}
		return true
	}
	return &SubmissionController[T]{resource: r, submissions: store}
}

func NewMazmoonController(store SubmissionStore[entities.MazmoonSubmission], auditService *audit.Service) *SubmissionController[entities.MazmoonSubmission] {
	return newSubmissionController(resource[entities.MazmoonSubmission]{
		entity:   "mazmoon_submission",
		label:    "Mazmoon submission",
		required: []string{"name", "mazmoon_title", "mazmoon_content"},
		id:       func(m *entities.MazmoonSubmission) uint { return m.ID },
		name:     func(m *entities.MazmoonSubmission) string { return m.MazmoonTitle },
		audit:    auditService,
	}, store, func(m *entities.MazmoonSubmission) { m.Approved = false })
}

func NewKalamSubmissionController(store SubmissionStore[entities.KalamSubmission], auditService *audit.Service) *SubmissionController[entities.KalamSubmission] {
	return newSubmissionController(resource[entities.KalamSubmission]{
		entity:   "kalam_submission",
		label:    "Kalam submission",
		required: []string{"name", "kalam_title", "kalam"},
		id:       func(k *entities.KalamSubmission) uint { return k.ID },
		name:     func(k *entities.KalamSubmission) string { return k.KalamTitle },
		audit:    auditService,
	}, store, func(k *entities.KalamSubmission) { k.Approved = false })
}

var approved = map[string]any{"Approved": true}

// Approved handles GET /<plural>/approved
func (sc *SubmissionController[T]) Approved(c *gin.Context) {
	rows, err := sc.submissions.ListWhere(approved, 0, 0)
	if err != nil {
		respondInternalError(c, err, "approved "+sc.entity)
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// ApprovedLimit handles GET /<singular>/limit?count=, defaulting to three
// entries.
func (sc *SubmissionController[T]) ApprovedLimit(c *gin.Context) {
	count, ok := parseCount(c, "count", defaultApprovedLimit, maxPageSize)
	if !ok {
		return
	}
	rows := []T{}
	if count > 0 {
		var err error
		rows, err = sc.submissions.ListWhere(approved, count, 0)
		if err != nil {
			respondInternalError(c, err, "approved "+sc.entity)
			return
		}
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// Count handles GET /<singular>/count
func (sc *SubmissionController[T]) Count(c *gin.Context) {
	total, err := sc.submissions.Count()
	if err != nil {
		respondInternalError(c, err, "count "+sc.entity)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// RegisterRoutes mounts the public routes on single and the admin routes
// on plural, e.g. /api/mazmoonsub and /api/mazmoonssub.
func (sc *SubmissionController[T]) RegisterRoutes(single, plural *gin.RouterGroup) {
	single.POST("", sc.Create)
	single.GET("/limit", sc.ApprovedLimit)
	single.GET("/count", sc.Count)

	plural.GET("", sc.List)
	plural.GET("/approved", sc.Approved)
	plural.GET("/:id", sc.Get)
	plural.PUT("/:id", sc.Update)
	plural.DELETE("/:id", sc.Delete)
}
