package repository

import (
	"context"
	"fmt"
	"strings"

	"refund-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RefundFilter narrows refund listings
type RefundFilter struct {
	// UserName matches refunds whose owner's name contains this substring
	UserName string
}

// RefundRepository handles database operations for refunds
type RefundRepository struct {
	db *pgxpool.Pool
}

// NewRefundRepository creates a new refund repository
func NewRefundRepository(db *pgxpool.Pool) *RefundRepository {
	return &RefundRepository{db: db}
}

const refundColumns = `
		r.id, r.user_id, r.name, r.category, r.amount, r.file_name, r.created_at, r.updated_at,
		u.id, u.name, u.email, u.role, u.created_at, u.updated_at`

// Create creates a new refund
func (r *RefundRepository) Create(ctx context.Context, refund *models.Refund) error {
	query := `
		INSERT INTO refunds (user_id, name, category, amount, file_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		refund.UserID,
		refund.Name,
		refund.Category,
		refund.Amount,
		refund.FileName,
	).Scan(&refund.ID, &refund.CreatedAt, &refund.UpdatedAt)

	return translateError(err)
}

// GetByID retrieves a refund with its owner
func (r *RefundRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Refund, error) {
	query := `SELECT` + refundColumns + `
		FROM refunds r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`

	refund, err := scanRefund(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}

	return refund, nil
}

// List retrieves a page of refunds, newest first
func (r *RefundRepository) List(ctx context.Context, filter RefundFilter, limit, offset int) ([]*models.Refund, error) {
	where, args := buildRefundWhere(filter, 1)
	argIndex := len(args) + 1

	query := `SELECT` + refundColumns + `
		FROM refunds r
		JOIN users u ON u.id = r.user_id` + where + `
		ORDER BY r.created_at DESC`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refunds := []*models.Refund{}
	for rows.Next() {
		refund, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, refund)
	}

	return refunds, rows.Err()
}

// Count returns the number of refunds matching filter
func (r *RefundRepository) Count(ctx context.Context, filter RefundFilter) (int, error) {
	where, args := buildRefundWhere(filter, 1)
	query := `
		SELECT COUNT(*)
		FROM refunds r
		JOIN users u ON u.id = r.user_id` + where

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanRefund(row pgx.Row) (*models.Refund, error) {
	refund := &models.Refund{User: &models.User{}}
	err := row.Scan(
		&refund.ID,
		&refund.UserID,
		&refund.Name,
		&refund.Category,
		&refund.Amount,
		&refund.FileName,
		&refund.CreatedAt,
		&refund.UpdatedAt,
		&refund.User.ID,
		&refund.User.Name,
		&refund.User.Email,
		&refund.User.Role,
		&refund.User.CreatedAt,
		&refund.User.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return refund, nil
}

// buildRefundWhere renders the WHERE clause for filter, numbering placeholders from argIndex
func buildRefundWhere(filter RefundFilter, argIndex int) (string, []any) {
	name := strings.TrimSpace(filter.UserName)
	if name == "" {
		return "", nil
	}
	return fmt.Sprintf(` WHERE u.name LIKE $%d ESCAPE '\'`, argIndex), []any{containsPattern(name)}
}

// containsPattern escapes LIKE wildcards so the input matches literally
func containsPattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(s) + "%"
}
