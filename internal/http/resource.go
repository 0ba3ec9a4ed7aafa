package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/database/records"
	"github.com/naatacademy/naat-api/internal/uploads"
)

const (
	defaultLimitedCount = 10
	maxPageSize         = 100
)

// ContentStore defines the table operations shared by every content
// controller. records.Repository implements it.
type ContentStore[T any] interface {
	List() ([]T, error)
	ListPage(limit, offset int) ([]T, error)
	Get(id uint) (*T, error)
	Create(row *T) error
	Save(row *T) error
	Delete(id uint) error
}

// imageField binds a multipart file part to a URL column.
type imageField[T any] struct {
	part string
	kind uploads.Kind
	url  func(row *T) *string
	// replace removes the previously stored file when a new one arrives.
	replace bool
}

// resource serves the list/get/search/create/update/delete endpoints of one
// content table. Entity controllers embed it and add their own routes.
type resource[T any] struct {
	entity   string // audit entity type
	label    string // used in response messages
	idField  string // JSON name of the primary key
	store    ContentStore[T]
	required []string
	images   []imageField[T]

	id     func(row *T) uint
	name   func(row *T) string
	search func(term string) ([]T, error)
	// prepare runs on a merged, validated row before it is written. It may
	// respond and return false to stop the request.
	prepare func(c *gin.Context, row *T, id uint) bool

	uploads *uploads.Service
	audit   *audit.Service
}

// List handles GET /
func (r *resource[T]) List(c *gin.Context) {
	rows, err := r.store.List()
	if err != nil {
		respondInternalError(c, err, "list "+r.entity)
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// Limited handles GET /limited?count=
func (r *resource[T]) Limited(c *gin.Context) {
	count, ok := parseCount(c, "count", defaultLimitedCount, maxPageSize)
	if !ok {
		return
	}
	rows, err := r.store.ListPage(count, 0)
	if err != nil {
		respondInternalError(c, err, "limited "+r.entity)
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// Get handles GET /:id
func (r *resource[T]) Get(c *gin.Context) {
	row, ok := r.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, row)
}

// Search handles GET /search?term=
func (r *resource[T]) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		respondBadRequest(c, "term is required")
		return
	}
	rows, err := r.search(term)
	if err != nil {
		respondInternalError(c, err, "search "+r.entity)
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// Create handles POST /
func (r *resource[T]) Create(c *gin.Context) {
	p, err := readPayload(c, r.bodyLimit())
	if err != nil {
		respondPayloadError(c, err)
		return
	}

	row := new(T)
	if !r.apply(c, p, row, 0) {
		return
	}
	stored, _, ok := r.storeImages(c, p, row)
	if !ok {
		return
	}

	if err := r.store.Create(row); err != nil {
		r.removeFiles(c, stored)
		respondInternalError(c, err, "create "+r.entity)
		return
	}

	id := r.id(row)
	r.audit.LogCreate(r.entity, id, r.name(row), requestInfo(c))
	respondCreated(c, r.label+" created successfully", id)
}

// Update handles PUT /:id. Fields missing from the request keep their
// stored values.
func (r *resource[T]) Update(c *gin.Context) {
	row, ok := r.load(c)
	if !ok {
		return
	}
	id := r.id(row)

	p, err := readPayload(c, r.bodyLimit())
	if err != nil {
		respondPayloadError(c, err)
		return
	}
	if p.empty() {
		respondBadRequest(c, "no fields to update")
		return
	}
	if !r.apply(c, p, row, id) {
		return
	}
	stored, replaced, ok := r.storeImages(c, p, row)
	if !ok {
		return
	}

	if err := r.store.Save(row); err != nil {
		r.removeFiles(c, stored)
		respondInternalError(c, err, "update "+r.entity)
		return
	}
	r.removeFiles(c, replaced)

	r.audit.LogUpdate(r.entity, id, r.name(row), requestInfo(c))
	respondMutation(c, r.label+" updated successfully", id)
}

// Delete handles DELETE /:id. Rows are soft-deleted.
func (r *resource[T]) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := r.store.Delete(id); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			respondNotFound(c, r.label)
			return
		}
		respondInternalError(c, err, "delete "+r.entity)
		return
	}

	r.audit.LogDelete(r.entity, id, "", requestInfo(c))
	respondMutation(c, r.label+" deleted successfully", id)
}

// load fetches the live row named by the :id parameter, responding 400 or
// 404 when it cannot.
func (r *resource[T]) load(c *gin.Context) (*T, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	row, err := r.store.Get(id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			respondNotFound(c, r.label)
			return nil, false
		}
		respondInternalError(c, err, "get "+r.entity)
		return nil, false
	}
	return row, true
}

// apply merges the payload into row, then checks required fields and runs
// prepare.
func (r *resource[T]) apply(c *gin.Context, p *payload, row *T, id uint) bool {
	if err := p.applyTo(row, r.idField); err != nil {
		var fe *fieldError
		if errors.As(err, &fe) {
			respondBadRequest(c, fe.Error())
			return false
		}
		respondBadRequest(c, "invalid request body")
		return false
	}

	if missing := missingFields(row, r.required); len(missing) > 0 {
		respondMissingFields(c, missing)
		return false
	}

	if r.prepare != nil && !r.prepare(c, row, id) {
		return false
	}
	return true
}

// bodyLimit allows one file per image field on top of the text fields.
func (r *resource[T]) bodyLimit() int64 {
	kinds := make([]uploads.Kind, 0, len(r.images))
	for _, img := range r.images {
		kinds = append(kinds, img.kind)
	}
	return uploads.BodyLimit(kinds...) + maxTextBody
}

// storeImages saves uploaded files into their URL columns. It returns the
// URLs it stored and the URLs of files to remove once the row is written.
func (r *resource[T]) storeImages(c *gin.Context, p *payload, row *T) (stored, replaced []string, ok bool) {
	for _, img := range r.images {
		fh, found := p.files[img.part]
		if !found {
			continue
		}
		if r.uploads == nil {
			respondError(c, http.StatusServiceUnavailable, "uploads_disabled", "file uploads are not configured")
			return nil, nil, false
		}

		url, err := r.uploads.Save(c.Request.Context(), img.kind, fh, requestInfo(c))
		if err != nil {
			r.removeFiles(c, stored)
			respondUploadError(c, err)
			return nil, nil, false
		}
		stored = append(stored, url)

		column := img.url(row)
		if img.replace && *column != "" && *column != url {
			replaced = append(replaced, *column)
		}
		*column = url
	}
	return stored, replaced, true
}

func (r *resource[T]) removeFiles(c *gin.Context, urls []string) {
	for _, url := range urls {
		r.uploads.Remove(c.Request.Context(), url)
	}
}

// respondUploadError maps upload validation failures to client errors.
func respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
	case errors.Is(err, uploads.ErrUnsupportedType):
		respondError(c, http.StatusBadRequest, "unsupported_file_type", err.Error())
	default:
		respondInternalError(c, err, "store upload")
	}
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// registerRoutes mounts the common endpoints.
func (r *resource[T]) registerRoutes(group *gin.RouterGroup) {
	group.GET("", r.List)
	group.GET("/search", r.Search)
	group.GET("/:id", r.Get)
	group.POST("", r.Create)
	group.PUT("/:id", r.Update)
	group.DELETE("/:id", r.Delete)
}
