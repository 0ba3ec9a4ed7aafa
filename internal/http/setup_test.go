package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/naatacademy/naat-api/internal/database"
	"github.com/naatacademy/naat-api/internal/storage/local"
	"github.com/naatacademy/naat-api/internal/uploads"
)

// pngBytes is the smallest payload mimetype detects as image/png.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(database.Config{
		Driver:   database.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestUploads(t *testing.T) (*uploads.Service, *local.Store) {
	t.Helper()
	store, err := local.New(t.TempDir(), "http://localhost:5000/uploads")
	require.NoError(t, err)
	return uploads.NewService(store, nil), store
}

func doRequest(router http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	if body == nil {
		return doRequest(router, method, path, nil, "")
	}
	data, _ := json.Marshal(body)
	return doRequest(router, method, path, bytes.NewReader(data), "application/json")
}

// multipartBody builds a form with the given fields and, when fileField is
// set, one file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// countingReader records how many body bytes the server consumed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
