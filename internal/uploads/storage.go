// Package uploads persists multipart file uploads on local disk and serves
// them back under /uploads/.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind restricts which file types a field accepts.
type Kind string

const (
	// KindImage accepts common image formats.
	KindImage Kind = "image"
	// KindPDF accepts PDF documents only.
	KindPDF Kind = "pdf"
	// KindAttachment accepts images and PDFs, the contact-form attachment rule.
	KindAttachment Kind = "attachment"
)

// ErrUnsupportedType indicates a file extension outside the allowed set.
var ErrUnsupportedType = errors.New("uploads: unsupported file type")

// ErrTooLarge indicates a file beyond the configured size limit.
var ErrTooLarge = errors.New("uploads: file too large")

var allowedExts = map[Kind]map[string]bool{
	KindImage:      {".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true},
	KindPDF:        {".pdf": true},
	KindAttachment: {".jpg": true, ".jpeg": true, ".png": true, ".pdf": true},
}

// Storage writes uploads below a root directory, one subdirectory per
// content kind (covers, books, certificates, contact-attachments).
type Storage struct {
	root     string
	maxBytes int64
}

// NewStorage constructs a Storage rooted at dir, creating it if needed.
func NewStorage(dir string, maxBytes int64) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create root: %w", err)
	}
	return &Storage{root: dir, maxBytes: maxBytes}, nil
}

// Save writes the content of r into subdir under a unique name and returns
// the public URL path. The original name only contributes its extension.
func (s *Storage) Save(r io.Reader, originalName string, kind Kind, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExts[kind][ext] {
		return "", ErrUnsupportedType
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("uploads: create dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("uploads: create file: %w", err)
	}
	defer dst.Close()

	limit := s.maxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	written, err := io.Copy(dst, io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("uploads: write file: %w", err)
	}
	if written > limit {
		_ = os.Remove(filepath.Join(dir, name))
		return "", ErrTooLarge
	}

	return path.Join("/uploads", subdir, name), nil
}

// SaveFromRequest stores the named multipart field if present. A missing
// field is not an error; it returns an empty path.
func (s *Storage) SaveFromRequest(r *http.Request, field string, kind Kind, subdir string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()
	return s.Save(file, header.Filename, kind, subdir)
}

// Handler serves stored files. PDFs render inline and images carry their
// content type, matching what the admin dashboard expects.
func (s *Storage) Handler() http.Handler {
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(strings.ToLower(r.URL.Path), ".pdf") {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `inline; filename="`+path.Base(r.URL.Path)+`"`)
		}
		fileServer.ServeHTTP(w, r)
	})
}
