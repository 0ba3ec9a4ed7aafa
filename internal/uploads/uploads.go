// Package uploads validates, names and stores files posted by the admin
// panel: images for writers, books, groups and sections, and book PDFs.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/storage"
)

const (
	MaxImageSize = 5 << 20
	MaxPDFSize   = 50 << 20

	// FormSlack covers multipart boundaries, part headers and small fields
	// sent alongside the files.
	FormSlack = 1 << 20
)

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Kind is a family of accepted files.
type Kind struct {
	Name    string
	MaxSize int64
	// Types maps an accepted extension to the content type its bytes must
	// sniff as.
	Types map[string]string
}

var (
	Image = Kind{
		Name:    "image",
		MaxSize: MaxImageSize,
		Types: map[string]string{
			".jpeg": "image/jpeg",
			".jpg":  "image/jpeg",
			".png":  "image/png",
			".gif":  "image/gif",
		},
	}
	PDF = Kind{
		Name:    "pdf",
		MaxSize: MaxPDFSize,
		Types:   map[string]string{".pdf": "application/pdf"},
	}
)

// BodyLimit is the largest request body that can carry one file of each
// kind.
func BodyLimit(kinds ...Kind) int64 {
	limit := int64(FormSlack)
	for _, k := range kinds {
		limit += k.MaxSize
	}
	return limit
}

// Check validates a file by name, size and leading bytes. It returns the
// normalized extension and the content type to store the file with.
func (k Kind) Check(filename string, size int64, head []byte) (ext, contentType string, err error) {
	if size > k.MaxSize {
		return "", "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, k.Name, k.MaxSize)
	}

	ext = strings.ToLower(filepath.Ext(filename))
	want, ok := k.Types[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	detected := mimetype.Detect(head)
	if !detected.Is(want) {
		return "", "", fmt.Errorf("%w: %s content is %s", ErrUnsupportedType, ext, detected.String())
	}

	return ext, want, nil
}

// NewKey names a stored file <unix-millis>-<uuid><ext>.
func NewKey(now time.Time, ext string) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), ext)
}

// Service stores validated files and removes replaced ones.
type Service struct {
	store storage.Store
	audit *audit.Service
	now   func() time.Time
}

func NewService(store storage.Store, auditService *audit.Service) *Service {
	return &Service{
		store: store,
		audit: auditService,
		now:   time.Now,
	}
}

// Save checks and stores a multipart file and returns its public URL.
func (s *Service) Save(ctx context.Context, kind Kind, fh *multipart.FileHeader, req audit.RequestInfo) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	return s.SaveReader(ctx, kind, fh.Filename, fh.Size, file, req)
}

// SaveReader is Save for content that did not come from a multipart form.
func (s *Service) SaveReader(ctx context.Context, kind Kind, filename string, size int64, content io.Reader, req audit.RequestInfo) (string, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	ext, contentType, err := kind.Check(filename, size, head)
	if err != nil {
		return "", err
	}

	// The size header can lie; cap what is actually copied.
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), content), kind.MaxSize+1)
	counted := &countingReader{r: body}

	key := NewKey(s.now(), ext)
	if err := s.store.Upload(ctx, key, counted, contentType); err != nil {
		return "", fmt.Errorf("store %s: %w", key, err)
	}
	if counted.n > kind.MaxSize {
		s.Remove(ctx, s.store.URL(key))
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, kind.Name, kind.MaxSize)
	}

	s.audit.LogUpload(key, counted.n, req)
	return s.store.URL(key), nil
}

// Remove deletes a previously stored file given its public URL. URLs that do
// not point into the store are ignored. Failures are only logged.
func (s *Service) Remove(ctx context.Context, url string) {
	key, ok := storage.KeyFromURL(s.store, url)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		log.Printf("Failed to remove replaced upload %s: %v", key, err)
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
