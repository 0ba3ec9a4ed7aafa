package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naatacademy/naat-api/internal/storage"
)

type recordedRequest struct {
	Method string
	Path   string
}

// fakeS3 answers PutObject and DeleteObject with empty success responses.
func fakeS3(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var mu sync.Mutex
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)

		mu.Lock()
		requests = append(requests, recordedRequest{Method: r.Method, Path: r.URL.Path})
		mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"etag"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(server.Close)

	return server, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{Region: "us-east-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket name is required")
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit", Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com"},
		{"endpoint", Config{Bucket: "b", Endpoint: "http://minio:9000"}, "http://minio:9000/b"},
		{"aws", Config{Bucket: "b", Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicURL(tt.cfg))
		})
	}
}

func TestStore_UploadAndDelete(t *testing.T) {
	server, requests := fakeS3(t)
	ctx := context.Background()

	store, err := New(ctx, Config{
		Bucket:          "naat-uploads",
		Region:          "us-east-1",
		Endpoint:        server.URL,
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
	})
	require.NoError(t, err)

	require.NoError(t, store.Upload(ctx, "a.png", strings.NewReader("png bytes"), "image/png"))
	require.NoError(t, store.Delete(ctx, "a.png"))

	got := requests()
	require.Len(t, got, 2)
	assert.Equal(t, recordedRequest{http.MethodPut, "/naat-uploads/a.png"}, got[0])
	assert.Equal(t, recordedRequest{http.MethodDelete, "/naat-uploads/a.png"}, got[1])

	url := store.URL("a.png")
	assert.Equal(t, server.URL+"/naat-uploads/a.png", url)

	key, ok := storage.KeyFromURL(store, url)
	assert.True(t, ok)
	assert.Equal(t, "a.png", key)
}

func TestStore_RejectsInvalidKey(t *testing.T) {
	store, err := New(context.Background(), Config{
		Bucket:          "b",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, store.Upload(context.Background(), "../x", strings.NewReader(""), ""), storage.ErrInvalidKey)
	assert.ErrorIs(t, store.Delete(context.Background(), "a/b"), storage.ErrInvalidKey)
}
