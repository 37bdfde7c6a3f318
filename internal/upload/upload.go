// Package upload stores multipart image uploads on disk and exposes them
// under a public URL path.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is the per-file upload limit.
	MaxFileSize = 10 << 20 // 10 MB

	// PublicPath is the URL prefix uploaded files are served under.
	PublicPath = "/uploads/images"
)

// Validation failures carry the client-facing message directly.
var (
	ErrInvalidType = errors.New("Tipo de arquivo invalido. Apenas JPEG, PNG, GIF e WebP sao permitidos")
	ErrTooLarge    = errors.New("Arquivo muito grande. Maximo de 10MB")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Store writes validated image files into a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory, for static route registration.
func (s *Store) Dir() string {
	return s.dir
}

// Validate checks extension, declared content type, sniffed content type
// and size. Nothing is written to disk.
func (s *Store) Validate(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return ErrInvalidType
	}
	if !allowedMIMETypes[header.Header.Get("Content-Type")] {
		return ErrInvalidType
	}
	if header.Size > MaxFileSize {
		return ErrTooLarge
	}

	// Sniff the first bytes: a .txt renamed to .png with a forged
	// content type must not pass the filter.
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if !allowedMIMETypes[http.DetectContentType(buf[:n])] {
		return ErrInvalidType
	}

	return nil
}

// Save validates the file, writes it under a generated name and returns
// its public URL. No file is left behind on failure.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	if err := s.Validate(header); err != nil {
		return "", err
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	filename := generateFilename(strings.ToLower(filepath.Ext(header.Filename)))
	dstPath := filepath.Join(s.dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return PublicPath + "/" + filename, nil
}

// Remove deletes the backing file for a public URL. A file that is
// already absent is not an error.
func (s *Store) Remove(imageURL string) error {
	name := path.Base(imageURL)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// generateFilename builds a collision-resistant name: millisecond
// timestamp plus a random suffix plus the original extension.
func generateFilename(ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
