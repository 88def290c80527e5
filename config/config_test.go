package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"refund-backend/storage"
	"refund-backend/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("UPLOAD_TMP_DIR", filepath.Join(root, "tmp"))
	t.Setenv("UPLOAD_DIR", filepath.Join(root, "uploads"))
	for _, key := range []string{
		"PORT", "JWT_TTL", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS",
		"UPLOAD_ACCEPTED_MIME_TYPES", "UPLOAD_MAX_FILE_SIZE", "UPLOAD_MAX_REQUEST_BYTES",
		"STORAGE_TYPE", "AWS_S3_BUCKET",
	} {
		t.Setenv(key, "")
	}
	return root
}

func TestLoadDefaults(t *testing.T) {
	root := setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, upload.DefaultAcceptedMimeTypes, cfg.Upload.AcceptedMimeTypes)
	assert.Equal(t, upload.DefaultMaxFileSize, cfg.Upload.MaxFileSizeBytes)
	assert.Equal(t, upload.DefaultMaxFileSize+1<<20, cfg.MaxRequestBytes)
	assert.Equal(t, filepath.Join(root, "tmp"), cfg.Upload.TransientDir)
	assert.Equal(t, filepath.Join(root, "uploads"), cfg.Upload.DurableDir)
	assert.DirExists(t, cfg.Upload.TransientDir)
	assert.DirExists(t, cfg.Upload.DurableDir)
	assert.Equal(t, storage.StorageTypeLocal, cfg.Storage.Type)
	assert.Equal(t, cfg.Upload.DurableDir, cfg.Storage.DurableDir)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPLOAD_ACCEPTED_MIME_TYPES", "image/png, application/pdf ,")
	t.Setenv("UPLOAD_MAX_FILE_SIZE", "1048576")
	t.Setenv("UPLOAD_MAX_REQUEST_BYTES", "2097152")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"image/png", "application/pdf"}, cfg.Upload.AcceptedMimeTypes)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxFileSizeBytes)
	assert.Equal(t, int64(2097152), cfg.MaxRequestBytes)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.NotNil(t, cfg.NewLogger())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "missing secret", key: "JWT_SECRET", value: ""},
		{name: "bad ttl", key: "JWT_TTL", value: "soon"},
		{name: "bad level", key: "LOG_LEVEL", value: "loud"},
		{name: "bad format", key: "LOG_FORMAT", value: "xml"},
		{name: "non numeric size", key: "UPLOAD_MAX_FILE_SIZE", value: "3MB"},
		{name: "zero size", key: "UPLOAD_MAX_FILE_SIZE", value: "0"},
		{name: "request cap below file size", key: "UPLOAD_MAX_REQUEST_BYTES", value: "1024"},
		{name: "unknown storage", key: "STORAGE_TYPE", value: "ftp"},
		{name: "s3 without bucket", key: "STORAGE_TYPE", value: "s3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsSharedDirectories(t *testing.T) {
	root := setBaseEnv(t)
	t.Setenv("UPLOAD_DIR", filepath.Join(root, "tmp"))

	_, err := Load()
	assert.Error(t, err)
}
