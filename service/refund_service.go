package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"refund-backend/models"
	"refund-backend/repository"

	"github.com/google/uuid"
)

// minFileNameLength matches the shortest name the upload endpoint can produce
const minFileNameLength = 20

// RefundStore is the persistence the refund service needs
type RefundStore interface {
	Create(ctx context.Context, refund *models.Refund) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Refund, error)
	List(ctx context.Context, filter repository.RefundFilter, limit, offset int) ([]*models.Refund, error)
	Count(ctx context.Context, filter repository.RefundFilter) (int, error)
}

// RefundService handles business logic for refunds
type RefundService struct {
	refundRepo RefundStore
}

// RefundServiceOption is a functional option for RefundService
type RefundServiceOption func(*RefundService)

// WithRefundRepository sets the refund repository
func WithRefundRepository(repo RefundStore) RefundServiceOption {
	return func(s *RefundService) {
		s.refundRepo = repo
	}
}

// NewRefundService creates a new refund service
func NewRefundService(opts ...RefundServiceOption) *RefundService {
	s := &RefundService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRefundRequest represents a request to create a refund
type CreateRefundRequest struct {
	UserID   uuid.UUID
	Name     string
	Category models.Category
	Amount   float64
	FileName string
}

// CreateRefundResult represents the result of creating a refund
type CreateRefundResult struct {
	Refund *models.Refund
}

// CreateRefund records a refund request. FileName is the opaque name returned by the
// upload endpoint and is stored as is.
func (s *RefundService) CreateRefund(ctx context.Context, req CreateRefundRequest) (*CreateRefundResult, error) {
	if s.refundRepo == nil {
		return nil, errors.New("refund repository not set")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "Refund name is required")
	}
	if !req.Category.Valid() {
		return nil, invalid("category", "Unknown category")
	}
	if req.Amount <= 0 {
		return nil, invalid("amount", "Amount must be positive")
	}
	if utf8.RuneCountInString(req.FileName) < minFileNameLength || strings.ContainsAny(req.FileName, `/\`) {
		return nil, invalid("fileName", "Invalid receipt file name")
	}

	refund := &models.Refund{
		UserID:   req.UserID,
		Name:     name,
		Category: req.Category,
		Amount:   req.Amount,
		FileName: req.FileName,
	}

	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	return &CreateRefundResult{Refund: refund}, nil
}

// GetRefundRequest represents a request to get a refund
type GetRefundRequest struct {
	ID uuid.UUID
}

// GetRefundResult represents the result of getting a refund
type GetRefundResult struct {
	Refund *models.Refund
}

// GetRefund retrieves a refund by ID
func (s *RefundService) GetRefund(ctx context.Context, req GetRefundRequest) (*GetRefundResult, error) {
	if s.refundRepo == nil {
		return nil, errors.New("refund repository not set")
	}

	refund, err := s.refundRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRefundNotFound
		}
		return nil, err
	}

	return &GetRefundResult{Refund: refund}, nil
}

// ListRefundsRequest represents a request to list refunds.
// Zero Page or PerPage fall back to the defaults.
type ListRefundsRequest struct {
	UserName string
	Page     int
	PerPage  int
}

// ListRefundsResult represents the result of listing refunds
type ListRefundsResult struct {
	Refunds    []*models.Refund
	Pagination Pagination
}

// ListRefunds lists refunds newest first, filtered by the owner's name
func (s *RefundService) ListRefunds(ctx context.Context, req ListRefundsRequest) (*ListRefundsResult, error) {
	if s.refundRepo == nil {
		return nil, errors.New("refund repository not set")
	}

	page, perPage, err := normalizePage(req.Page, req.PerPage)
	if err != nil {
		return nil, err
	}

	filter := repository.RefundFilter{UserName: strings.TrimSpace(req.UserName)}

	refunds, err := s.refundRepo.List(ctx, filter, perPage, pageOffset(page, perPage))
	if err != nil {
		return nil, err
	}

	total, err := s.refundRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListRefundsResult{
		Refunds: refunds,
		Pagination: Pagination{
			Page:         page,
			PerPage:      perPage,
			TotalRecords: total,
			TotalPages:   totalPages(total, perPage),
		},
	}, nil
}
