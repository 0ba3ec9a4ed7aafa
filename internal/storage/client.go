// Package storage defines where uploaded files live. Backends are chosen
// with STORAGE_BACKEND: the local filesystem behind /uploads, or an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInvalidKey is returned for keys that could escape the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// Store defines the operations the upload flow needs from a backend.
type Store interface {
	// Upload writes content under key, replacing any existing object.
	Upload(ctx context.Context, key string, content io.Reader, contentType string) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL the object is served from.
	URL(key string) string
}

// ValidKey reports whether key is a single flat file name.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`) && !strings.Contains(key, "..")
}

// KeyFromURL returns the key of an object previously stored in s, given its
// public URL. URLs pointing elsewhere report false.
func KeyFromURL(s Store, url string) (string, bool) {
	prefix := s.URL("")
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if !ValidKey(key) {
		return "", false
	}
	return key, true
}
