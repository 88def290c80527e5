package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath string
	rename   func(oldpath, newpath string) error
	syncDir  func(dir string) error
}

// NewLocalStorage creates a new local storage instance rooted at the durable directory
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		rename:   os.Rename,
		syncDir:  fsyncDir,
	}, nil
}

// Persist moves the transient file into the durable directory.
// A plain rename is atomic when both directories share a filesystem. Across volumes the
// bytes are copied to a temp file inside the durable directory, synced, renamed into place,
// and only then is the source removed.
func (s *LocalStorage) Persist(ctx context.Context, transientPath, durableFilename string) error {
	if !isPlainName(durableFilename) {
		return fmt.Errorf("invalid durable filename %q", durableFilename)
	}
	fullPath := filepath.Join(s.basePath, durableFilename)

	err := s.rename(transientPath, fullPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("failed to move file: %w", err)
	}

	return s.copyAcrossDevices(transientPath, fullPath)
}

func (s *LocalStorage) copyAcrossDevices(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open transient file: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(s.basePath, ".promote-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	// Same directory, so this rename is atomic
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	// The new directory entry must be on disk before the source goes away
	if err := s.syncDir(s.basePath); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to sync storage directory: %w", err)
	}

	// The durable copy is complete. A source that refuses to go away is left for the
	// caller's cleanup, which reports it.
	in.Close()
	_ = removeFile(src)
	return nil
}

func fsyncDir(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()
	return dir.Sync()
}

// Download retrieves a file from local storage
func (s *LocalStorage) Download(ctx context.Context, durableFilename string) (io.ReadCloser, error) {
	if !isPlainName(durableFilename) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, durableFilename)
	}
	fullPath := filepath.Join(s.basePath, durableFilename)

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, durableFilename)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a file at an absolute path
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	return removeFile(path)
}

// isPlainName rejects anything that could escape the durable directory
func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name
}
