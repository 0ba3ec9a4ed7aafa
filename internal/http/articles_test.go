package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naatacademy/naat-api/internal/database"
	"github.com/naatacademy/naat-api/internal/database/records"
	"github.com/naatacademy/naat-api/internal/entities"
)

func setupArticlesRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	db := setupTestDB(t)

	router := gin.New()
	NewArticlesController(records.NewRepository[entities.Article](db.DB), nil).
		RegisterRoutes(router.Group("/api/articles"))
	return router, db
}

func createArticle(t *testing.T, router *gin.Engine, body map[string]any) uint {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/articles", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeJSON[MutationResponse](t, w)
	require.True(t, resp.Success)
	return resp.ID
}

func TestArticlesController_Create(t *testing.T) {
	t.Run("creates an article and returns its id", func(t *testing.T) {
		router, db := setupArticlesRouter(t)

		w := doJSON(router, http.MethodPost, "/api/articles", map[string]any{
			"Title":        "Ya Nabi Salam",
			"WriterID":     1,
			"WriterName":   "Ahmed Raza",
			"CategoryID":   2,
			"CategoryName": "Naat",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeJSON[MutationResponse](t, w)
		assert.Equal(t, "Article created successfully", resp.Message)
		assert.NotZero(t, resp.ID)

		var stored entities.Article
		require.NoError(t, db.DB.First(&stored, resp.ID).Error)
		assert.Equal(t, "Ya Nabi Salam", stored.Title)
		assert.Contains(t, stored.SearchKeys, "nab")
		assert.False(t, stored.CreatedOn.IsZero())
	})

	t.Run("lists missing required fields", func(t *testing.T) {
		router, _ := setupArticlesRouter(t)

		w := doJSON(router, http.MethodPost, "/api/articles", map[string]any{
			"Title":    "Only a title",
			"WriterID": 0,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeJSON[ErrorResponse](t, w)
		assert.Equal(t, "missing_fields", resp.Code)
		assert.Equal(t, []string{"WriterID", "CategoryID"}, resp.MissingFields)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		router, _ := setupArticlesRouter(t)

		w := doRequest(router, http.MethodPost, "/api/articles", strings.NewReader("{not json"), "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestArticlesController_GetAndDelete(t *testing.T) {
	router, _ := setupArticlesRouter(t)
	id := createArticle(t, router, map[string]any{"Title": "Hamd", "WriterID": 1, "CategoryID": 1})
	path := fmt.Sprintf("/api/articles/%d", id)

	w := doJSON(router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	article := decodeJSON[entities.Article](t, w)
	assert.Equal(t, "Hamd", article.Title)

	w = doJSON(router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Article deleted successfully", decodeJSON[MutationResponse](t, w).Message)

	t.Run("deleted article is not found", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Article not found", decodeJSON[ErrorResponse](t, w).Error)
	})

	t.Run("deleting twice is not found", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("deleted article is not listed", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/articles", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/articles/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestArticlesController_List(t *testing.T) {
	router, _ := setupArticlesRouter(t)
	for i := 1; i <= 3; i++ {
		createArticle(t, router, map[string]any{"Title": fmt.Sprintf("Article %d", i), "WriterID": 1, "CategoryID": 1})
	}

	w := doJSON(router, http.MethodGet, "/api/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeJSON[[]entities.Article](t, w)
	require.Len(t, all, 3)
	assert.Equal(t, "Article 3", all[0].Title, "newest first")

	w = doJSON(router, http.MethodGet, "/api/articles/limited?count=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	limited := decodeJSON[[]entities.Article](t, w)
	assert.Len(t, limited, 2)

	w = doJSON(router, http.MethodGet, "/api/articles/limited?count=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArticlesController_Search(t *testing.T) {
	router, _ := setupArticlesRouter(t)
	createArticle(t, router, map[string]any{"Title": "Salam", "WriterName": "Nabi Shah", "WriterID": 1, "CategoryID": 1})
	createArticle(t, router, map[string]any{"Title": "Ya Nabi", "WriterName": "Raza", "WriterID": 1, "CategoryID": 1})
	createArticle(t, router, map[string]any{"Title": "Hamd", "WriterName": "Qasmi", "WriterID": 1, "CategoryID": 1})

	t.Run("partial word matches", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/articles/search?term=nab", nil)
		require.Equal(t, http.StatusOK, w.Code)
		results := decodeJSON[[]entities.Article](t, w)
		require.Len(t, results, 2)
	})

	t.Run("title matches rank first", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/articles/search?term=Nabi", nil)
		require.Equal(t, http.StatusOK, w.Code)
		results := decodeJSON[[]entities.Article](t, w)
		require.Len(t, results, 2)
		assert.Equal(t, "Ya Nabi", results[0].Title)
		assert.Equal(t, "Salam", results[1].Title)
	})

	t.Run("no match returns empty list", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/articles/search?term=jjj", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("term is required", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/articles/search?term=%20", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "term is required", decodeJSON[ErrorResponse](t, w).Error)
	})
}

func TestArticlesController_Update(t *testing.T) {
	router, db := setupArticlesRouter(t)
	id := createArticle(t, router, map[string]any{
		"Title":       "Old title",
		"WriterID":    1,
		"WriterName":  "Raza",
		"CategoryID":  2,
		"ContentUrdu": "متن",
	})
	path := fmt.Sprintf("/api/articles/%d", id)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, path, map[string]any{"Title": "New title", "ArticleID": 999})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, id, decodeJSON[MutationResponse](t, w).ID)

		var stored entities.Article
		require.NoError(t, db.DB.First(&stored, id).Error)
		assert.Equal(t, "New title", stored.Title)
		assert.Equal(t, "Raza", stored.WriterName)
		assert.Equal(t, "متن", stored.ContentUrdu)
		assert.Contains(t, stored.SearchKeys, "new")
		assert.NotContains(t, stored.SearchKeys, "old")
	})

	t.Run("blanking a required field is rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, path, map[string]any{"Title": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"Title"}, decodeJSON[ErrorResponse](t, w).MissingFields)
	})

	t.Run("empty body is rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, path, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown article", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/api/articles/4040", map[string]any{"Title": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestArticlesController_Edit(t *testing.T) {
	router, _ := setupArticlesRouter(t)
	id := createArticle(t, router, map[string]any{"Title": "Mazmoon", "WriterID": 1, "CategoryID": 1})

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/articles/%d/edit", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[struct {
		Article entities.Article `json:"article"`
		Success bool             `json:"success"`
	}](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Mazmoon", resp.Article.Title)
}
