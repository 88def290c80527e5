package handlers

import (
	"log/slog"
	"net/http"

	"refund-backend/middleware"
	"refund-backend/models"
	"refund-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RefundHandler handles HTTP requests for refunds
type RefundHandler struct {
	refundService *service.RefundService
	logger        *slog.Logger
}

// NewRefundHandler creates a new refund handler
func NewRefundHandler(refundService *service.RefundService, logger *slog.Logger) *RefundHandler {
	return &RefundHandler{
		refundService: refundService,
		logger:        logger.With(slog.String("component", "refund_handler")),
	}
}

// CreateRefundRequest represents the request body for creating a refund
type CreateRefundRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	FileName string  `json:"fileName" binding:"required"`
}

// CreateRefund handles POST /refunds
func (h *RefundHandler) CreateRefund(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var req CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.refundService.CreateRefund(c.Request.Context(), service.CreateRefundRequest{
		UserID:   user.ID,
		Name:     req.Name,
		Category: models.Category(req.Category),
		Amount:   req.Amount,
		FileName: req.FileName,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, result.Refund)
}

type listRefundsQuery struct {
	Name    string `form:"name"`
	Page    int    `form:"page"`
	PerPage int    `form:"perpage"`
}

// ListRefunds handles GET /refunds
func (h *RefundHandler) ListRefunds(c *gin.Context) {
	var query listRefundsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "page and perpage must be integers")
		return
	}

	result, err := h.refundService.ListRefunds(c.Request.Context(), service.ListRefundsRequest{
		UserName: query.Name,
		Page:     query.Page,
		PerPage:  query.PerPage,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"refunds":    result.Refunds,
		"pagination": result.Pagination,
	})
}

// GetRefund handles GET /refunds/:id
func (h *RefundHandler) GetRefund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid refund ID format")
		return
	}

	result, err := h.refundService.GetRefund(c.Request.Context(), service.GetRefundRequest{ID: id})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, result.Refund)
}
