package upload

import (
	"path/filepath"
	"slices"
)

// DefaultMaxFileSize is the largest receipt accepted when no override is configured (3 MB)
const DefaultMaxFileSize int64 = 3 * 1024 * 1024

// DefaultAcceptedMimeTypes lists the receipt image formats accepted by default
var DefaultAcceptedMimeTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// Policy describes what uploads are accepted and where they live.
// It is built once at startup and never mutated afterwards.
type Policy struct {
	AcceptedMimeTypes []string
	MaxFileSizeBytes  int64
	TransientDir      string // holding area written by the web layer
	DurableDir        string // archive referenced by refund records
}

// Accepts reports whether mimeType is whitelisted
func (p Policy) Accepts(mimeType string) bool {
	return slices.Contains(p.AcceptedMimeTypes, mimeType)
}

// DurablePath returns the absolute location of a durable file
func (p Policy) DurablePath(durableFilename string) string {
	return filepath.Join(p.DurableDir, durableFilename)
}
