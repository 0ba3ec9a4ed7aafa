package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naatacademy/naat-api/internal/database"
	"github.com/naatacademy/naat-api/internal/database/records"
	"github.com/naatacademy/naat-api/internal/entities"
)

func setupBazmeDuroodRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	db := setupTestDB(t)

	router := gin.New()
	NewBazmeDuroodController(records.NewRepository[entities.BazmeDurood](db.DB).NewestBy("inserted_date"), nil).
		RegisterRoutes(router.Group("/api/bazmedurood"))
	return router, db
}

func TestBazmeDuroodController_Create(t *testing.T) {
	router, db := setupBazmeDuroodRouter(t)

	t.Run("accepts the public form", func(t *testing.T) {
		form := url.Values{
			"full_name_roman": {"Muhammad Bilal"},
			"country":         {"Pakistan"},
			"city":            {"Lahore"},
			"durood_count":    {"313"},
			"dua":             {"دعا"},
		}
		w := doRequest(router, http.MethodPost, "/api/bazmedurood", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var stored entities.BazmeDurood
		require.NoError(t, db.DB.First(&stored, decodeJSON[MutationResponse](t, w).ID).Error)
		assert.Equal(t, "Muhammad Bilal", stored.FullNameRoman)
		assert.Equal(t, int64(313), stored.DuroodCount)
		assert.False(t, stored.InsertedDate.IsZero())
	})

	t.Run("requires name and count", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/bazmedurood", map[string]any{"full_name_roman": "Bilal"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"durood_count"}, decodeJSON[ErrorResponse](t, w).MissingFields)
	})

	t.Run("rejects a non-numeric count", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/bazmedurood", map[string]any{
			"full_name_roman": "Bilal",
			"durood_count":    "many",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid value for durood_count", decodeJSON[ErrorResponse](t, w).Error)
	})
}

func TestBazmeDuroodController_Listing(t *testing.T) {
	router, db := setupBazmeDuroodRouter(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		require.NoError(t, db.DB.Create(&entities.BazmeDurood{
			FullNameRoman: fmt.Sprintf("Entry %d", i),
			DuroodCount:   int64(i * 100),
			InsertedDate:  base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}
	require.NoError(t, db.DB.Create(&entities.BazmeDurood{
		FullNameRoman: "Removed",
		DuroodCount:   1000,
		IsDeleted:     true,
	}).Error)

	t.Run("list is newest first", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/bazmedurood", nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := decodeJSON[[]entities.BazmeDurood](t, w)
		require.Len(t, rows, 5)
		assert.Equal(t, "Entry 5", rows[0].FullNameRoman)
	})

	t.Run("by id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/bazmedurood/id/2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Entry 2", decodeJSON[entities.BazmeDurood](t, w).FullNameRoman)

		w = doJSON(router, http.MethodGet, "/api/bazmedurood/id/6", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("limit", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/bazmedurood/limit/2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := decodeJSON[[]entities.BazmeDurood](t, w)
		require.Len(t, rows, 2)
		assert.Equal(t, "Entry 4", rows[1].FullNameRoman)

		w = doJSON(router, http.MethodGet, "/api/bazmedurood/limit/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("limit ignores the query string", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/bazmedurood/limit/1?limit=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeJSON[[]entities.BazmeDurood](t, w), 1)

		w = doJSON(router, http.MethodGet, "/api/bazmedurood/limit/2?limit=abc", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeJSON[[]entities.BazmeDurood](t, w), 2)
	})

	t.Run("paginate", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/bazmedurood/paginate?limit=2&offset=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := decodeJSON[[]entities.BazmeDurood](t, w)
		require.Len(t, rows, 2)
		assert.Equal(t, "Entry 3", rows[0].FullNameRoman)
		assert.Equal(t, "Entry 2", rows[1].FullNameRoman)
	})

	t.Run("total count skips deleted entries", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/bazmedurood/total-count", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeJSON[map[string]int64](t, w)
		assert.Equal(t, int64(5), resp["total_entries"])
		assert.Equal(t, int64(1500), resp["total_durood_count"])
	})
}

func setupMazmoonRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	db := setupTestDB(t)

	router := gin.New()
	NewMazmoonController(records.NewRepository[entities.MazmoonSubmission](db.DB).NewestBy("created_at"), nil).
		RegisterRoutes(router.Group("/api/mazmoonsub"), router.Group("/api/mazmoonssub"))
	return router, db
}

func TestSubmissionController_Mazmoon(t *testing.T) {
	router, db := setupMazmoonRouter(t)

	submit := func(title string) uint {
		w := doJSON(router, http.MethodPost, "/api/mazmoonsub", map[string]any{
			"name":            "Ayesha",
			"email":           "ayesha@example.com",
			"mazmoon_title":   title,
			"mazmoon_content": "...",
			"Approved":        true,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decodeJSON[MutationResponse](t, w).ID
	}

	first := submit("Seerat-un-Nabi")
	second := submit("Milad")
	submit("Shama'il")

	t.Run("new submissions are not approved", func(t *testing.T) {
		var stored entities.MazmoonSubmission
		require.NoError(t, db.DB.First(&stored, first).Error)
		assert.False(t, stored.Approved)

		w := doJSON(router, http.MethodGet, "/api/mazmoonssub/approved", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("required fields", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/mazmoonsub", map[string]any{"name": "Ayesha"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"mazmoon_title", "mazmoon_content"}, decodeJSON[ErrorResponse](t, w).MissingFields)
	})

	t.Run("admin approves", func(t *testing.T) {
		for _, id := range []uint{first, second} {
			w := doJSON(router, http.MethodPut, fmt.Sprintf("/api/mazmoonssub/%d", id), map[string]any{"Approved": true})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w := doJSON(router, http.MethodGet, "/api/mazmoonssub/approved", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeJSON[[]entities.MazmoonSubmission](t, w), 2)

		w = doJSON(router, http.MethodGet, "/api/mazmoonsub/limit?count=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := decodeJSON[[]entities.MazmoonSubmission](t, w)
		require.Len(t, rows, 1)
		assert.Equal(t, "Milad", rows[0].MazmoonTitle)

		w = doJSON(router, http.MethodGet, "/api/mazmoonsub/limit?count=0", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("count and listing", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/mazmoonsub/count", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(3), decodeJSON[map[string]int64](t, w)["total"])

		w = doJSON(router, http.MethodGet, "/api/mazmoonssub", nil)
		require.Equal(t, http.StatusOK, w.Code)
		rows := decodeJSON[[]entities.MazmoonSubmission](t, w)
		require.Len(t, rows, 3)
		assert.Equal(t, "Shama'il", rows[0].MazmoonTitle)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/mazmoonssub/%d", second), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/mazmoonssub/%d", second), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(router, http.MethodGet, "/api/mazmoonsub/count", nil)
		assert.Equal(t, int64(2), decodeJSON[map[string]int64](t, w)["total"])
	})
}

func TestSubmissionController_Kalam(t *testing.T) {
	db := setupTestDB(t)

	router := gin.New()
	group := router.Group("/api/kalam-submissions")
	NewKalamSubmissionController(records.NewRepository[entities.KalamSubmission](db.DB).NewestBy("created_at"), nil).
		RegisterRoutes(group.Group("/kalamsub"), group.Group("/kalamssub"))

	w := doJSON(router, http.MethodPost, "/api/kalam-submissions/kalamsub", map[string]any{
		"name":        "Usman",
		"kalam_title": "Naat",
		"poet_name":   "Usman",
		"kalam":       "...",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeJSON[MutationResponse](t, w).ID

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/kalam-submissions/kalamssub/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	submission := decodeJSON[entities.KalamSubmission](t, w)
	assert.Equal(t, "Usman", submission.PoetName)
	assert.False(t, submission.Approved)
	assert.False(t, submission.CreatedAt.IsZero())

	w = doJSON(router, http.MethodGet, "/api/kalam-submissions/kalamsub/limit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
