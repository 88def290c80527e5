package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"refund-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondBindError reports a malformed JSON body without echoing validator internals
func respondBindError(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing or invalid field: "+jsonFieldName(fieldErrs[0]))
	case errors.As(err, &typeErr):
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid value for field: "+typeErr.Field)
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}
}

// jsonFieldName lowercases the first letter of the struct field, which matches the json tags in this package
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// respondServiceError maps service errors to HTTP responses. Unexpected errors are logged
// and hidden behind a generic message.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message)
	case errors.Is(err, service.ErrRefundNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Refund not found")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "EMAIL_TAKEN", "A user with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		logger.Error("request failed",
			slog.String("route", c.FullPath()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
