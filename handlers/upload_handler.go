package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"refund-backend/storage"
	"refund-backend/upload"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler handles HTTP requests for receipt uploads
type UploadHandler struct {
	pipeline        *upload.Pipeline
	storage         storage.Storage
	transientDir    string
	maxRequestBytes int64
	logger          *slog.Logger
}

// NewUploadHandler creates a new upload handler.
// maxRequestBytes caps the whole request body before any multipart parsing.
func NewUploadHandler(pipeline *upload.Pipeline, store storage.Storage, policy upload.Policy, maxRequestBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		pipeline:        pipeline,
		storage:         store,
		transientDir:    policy.TransientDir,
		maxRequestBytes: maxRequestBytes,
		logger:          logger.With(slog.String("component", "upload_handler")),
	}
}

// UploadFile handles POST /uploads
func (h *UploadHandler) UploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestBytes)

	// A nil incoming file lets the pipeline report the missing upload
	var incoming *upload.IncomingFile

	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		incoming, err = h.receive(c, fileHeader)
		if err != nil {
			h.logger.Error("failed to write transient upload", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to receive file, please try again")
			return
		}
	case errors.Is(err, http.ErrMissingFile):
	case isBodyTooLarge(err):
		respondError(c, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "Request body is too large")
		return
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Expected a multipart form with a file field")
		return
	}

	durable, err := h.pipeline.Ingest(c.Request.Context(), incoming)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"filename":  durable.Filename,
		"mime_type": durable.MimeType,
		"size":      durable.Size,
	})
}

// receive writes the multipart part into the transient area under a random name
func (h *UploadHandler) receive(c *gin.Context, fileHeader *multipart.FileHeader) (*upload.IncomingFile, error) {
	transientPath := filepath.Join(h.transientDir, uuid.NewString()+".upload")

	if err := c.SaveUploadedFile(fileHeader, transientPath); err != nil {
		// Drop whatever was partially written
		_ = h.storage.Delete(c.Request.Context(), transientPath)
		return nil, err
	}

	return &upload.IncomingFile{
		DeclaredFilename: fileHeader.Filename,
		MimeType:         fileHeader.Header.Get("Content-Type"),
		Size:             fileHeader.Size,
		TransientPath:    transientPath,
	}, nil
}

func (h *UploadHandler) respondUploadError(c *gin.Context, err error) {
	var validationErr *upload.ValidationError
	switch {
	case errors.Is(err, upload.ErrMissingFile):
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationCode(validationErr.Rule), validationErr.Message)
	case errors.Is(err, upload.ErrStorageFailure):
		// Cause already logged by the pipeline
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store file, please try again")
	default:
		h.logger.Error("unexpected upload error", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func validationCode(rule upload.Rule) string {
	switch rule {
	case upload.RuleEmptyFilename:
		return "EMPTY_FILENAME"
	case upload.RuleUnsupportedType:
		return "INVALID_FILE_TYPE"
	case upload.RuleTooLarge:
		return "FILE_TOO_LARGE"
	default:
		return "VALIDATION_ERROR"
	}
}

// GetFile handles GET /uploads/:filename
func (h *UploadHandler) GetFile(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		respondError(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid file name")
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "File not found")
			return
		}
		h.logger.Error("failed to download file",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "Failed to download file")
		return
	}
	defer reader.Close()

	size := int64(-1)
	if f, ok := reader.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
	}

	c.DataFromReader(http.StatusOK, size, storage.ContentTypeFor(filename), reader, nil)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
