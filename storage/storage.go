package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Download when no durable file has the requested name
var ErrNotFound = errors.New("file not found")

// Storage moves validated uploads into durable storage
type Storage interface {
	// Persist promotes the file at transientPath to durable storage under durableFilename.
	// Either the durable file ends up byte-identical to the source or nothing is left behind.
	// On failure the transient file is left in place.
	Persist(ctx context.Context, transientPath, durableFilename string) error

	// Download retrieves a durable file by name
	Download(ctx context.Context, durableFilename string) (io.ReadCloser, error)

	// Delete removes the file at an absolute path. Missing files are not an error.
	Delete(ctx context.Context, path string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	DurableDir   string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	S3Endpoint   string // Optional, S3-compatible endpoints such as MinIO
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.DurableDir)
	case StorageTypeS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// maxExtRunes keeps durable names well under the 255 byte filename limit
const maxExtRunes = 32

// GenerateDurableName derives a collision-resistant storage name from the client's filename.
// The result is a random uuid followed by the sanitised base name and the original extension,
// so it never equals the declared name and never contains path separators.
func GenerateDurableName(declaredFilename string) string {
	declared := strings.TrimSpace(strings.ReplaceAll(declaredFilename, "\\", "/"))
	base := filepath.Base(declared)
	ext := filepath.Ext(base)
	name := sanitize(strings.TrimSuffix(base, ext), 50)

	// Only letters and digits survive in the extension, up to maxExtRunes
	ext = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, ext)
	if runes := []rune(ext); len(runes) > maxExtRunes {
		ext = string(runes[:maxExtRunes])
	}
	if ext != "" {
		ext = "." + ext
	}

	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s-%s%s", uuid.NewString(), name, ext)
}

// ContentTypeFor determines content type from filename
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// sanitize keeps letters, digits, dash and underscore. Spaces become underscores.
func sanitize(s string, maxRunes int) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n == maxRunes {
			break
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		default:
			continue
		}
		n++
	}
	return b.String()
}

// removeFile deletes path, treating an already missing file as success
func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
