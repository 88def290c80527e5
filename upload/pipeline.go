package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"refund-backend/storage"
)

// ErrStorageFailure wraps any filesystem or object-store error raised while promoting an upload
var ErrStorageFailure = errors.New("failed to store file")

// DurableFile is the result of a successful promotion
type DurableFile struct {
	Filename string
	MimeType string
	Size     int64
}

// Pipeline validates uploads and promotes them to durable storage.
// It holds no per-upload state, so one instance serves all requests concurrently.
type Pipeline struct {
	policy  Policy
	storage storage.Storage
	logger  *slog.Logger
}

// NewPipeline creates a new upload pipeline
func NewPipeline(policy Policy, store storage.Storage, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		policy:  policy,
		storage: store,
		logger:  logger.With(slog.String("component", "upload_pipeline")),
	}
}

// Ingest takes ownership of file. On return, success or failure, the transient file is gone
// unless its removal failed, which is logged at warning level.
//
// Errors: ErrMissingFile, *ValidationError, or an error wrapping ErrStorageFailure.
func (p *Pipeline) Ingest(ctx context.Context, file *IncomingFile) (*DurableFile, error) {
	if file == nil {
		uploadsTotal.WithLabelValues(resultMissingFile).Inc()
		return nil, ErrMissingFile
	}

	// A client disconnect must not interrupt a promotion or skip the cleanup
	ctx = context.WithoutCancel(ctx)
	defer p.cleanup(ctx, file.TransientPath)

	if err := Validate(file, p.policy); err != nil {
		uploadsTotal.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}

	durableFilename := storage.GenerateDurableName(file.DeclaredFilename)

	if err := p.storage.Persist(ctx, file.TransientPath, durableFilename); err != nil {
		uploadsTotal.WithLabelValues(resultStorageFailure).Inc()
		p.logger.Error("failed to persist upload",
			slog.String("declared_filename", file.DeclaredFilename),
			slog.String("durable_filename", durableFilename),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	uploadsTotal.WithLabelValues(resultSuccess).Inc()
	p.logger.Debug("upload stored",
		slog.String("durable_filename", durableFilename),
		slog.Int64("size", file.Size),
	)

	return &DurableFile{
		Filename: durableFilename,
		MimeType: file.MimeType,
		Size:     file.Size,
	}, nil
}

// cleanup removes the transient file. After a successful promotion there is usually
// nothing left to remove, which Delete treats as success.
func (p *Pipeline) cleanup(ctx context.Context, transientPath string) {
	if transientPath == "" {
		return
	}
	if err := p.storage.Delete(ctx, transientPath); err != nil {
		cleanupFailuresTotal.Inc()
		p.logger.Warn("failed to remove transient upload",
			slog.String("path", transientPath),
			slog.String("error", err.Error()),
		)
	}
}
