package service

import (
	"context"
	"testing"

	"refund-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFileName = "3f1c9a4e-6b1d-4e0b-9a53-0c2f6f1d2e7a-receipt.png"

func TestCreateRefund(t *testing.T) {
	store := newMemoryRefundStore()
	svc := NewRefundService(WithRefundRepository(store))
	userID := uuid.New()

	result, err := svc.CreateRefund(context.Background(), CreateRefundRequest{
		UserID:   userID,
		Name:     "  Team lunch ",
		Category: models.CategoryFood,
		Amount:   42.5,
		FileName: testFileName,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.Refund.ID)
	assert.Equal(t, "Team lunch", result.Refund.Name)
	assert.Equal(t, userID, result.Refund.UserID)
	assert.Equal(t, testFileName, result.Refund.FileName)
	assert.Len(t, store.refunds, 1)
}

func TestCreateRefundValidation(t *testing.T) {
	valid := CreateRefundRequest{
		UserID:   uuid.New(),
		Name:     "Taxi",
		Category: models.CategoryTransport,
		Amount:   10,
		FileName: testFileName,
	}

	tests := []struct {
		name   string
		mutate func(*CreateRefundRequest)
		field  string
	}{
		{name: "blank name", mutate: func(r *CreateRefundRequest) { r.Name = "  " }, field: "name"},
		{name: "unknown category", mutate: func(r *CreateRefundRequest) { r.Category = "fun" }, field: "category"},
		{name: "zero amount", mutate: func(r *CreateRefundRequest) { r.Amount = 0 }, field: "amount"},
		{name: "negative amount", mutate: func(r *CreateRefundRequest) { r.Amount = -3 }, field: "amount"},
		{name: "short filename", mutate: func(r *CreateRefundRequest) { r.FileName = "receipt.png" }, field: "fileName"},
		{name: "path in filename", mutate: func(r *CreateRefundRequest) { r.FileName = "../../" + testFileName }, field: "fileName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryRefundStore()
			svc := NewRefundService(WithRefundRepository(store))

			req := valid
			tt.mutate(&req)
			_, err := svc.CreateRefund(context.Background(), req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, store.refunds)
		})
	}
}

func TestGetRefund(t *testing.T) {
	store := newMemoryRefundStore()
	svc := NewRefundService(WithRefundRepository(store))

	created, err := svc.CreateRefund(context.Background(), CreateRefundRequest{
		UserID: uuid.New(), Name: "Hotel", Category: models.CategoryAccommodation, Amount: 300, FileName: testFileName,
	})
	require.NoError(t, err)

	got, err := svc.GetRefund(context.Background(), GetRefundRequest{ID: created.Refund.ID})
	require.NoError(t, err)
	assert.Equal(t, "Hotel", got.Refund.Name)

	_, err = svc.GetRefund(context.Background(), GetRefundRequest{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrRefundNotFound)
}

func TestListRefunds(t *testing.T) {
	store := newMemoryRefundStore()
	alice := &models.User{ID: uuid.New(), Name: "Alice Smith"}
	bob := &models.User{ID: uuid.New(), Name: "Bob Jones"}
	store.owners[alice.ID] = alice
	store.owners[bob.ID] = bob

	svc := NewRefundService(WithRefundRepository(store))
	for i := 0; i < 12; i++ {
		owner := alice
		if i%3 == 0 {
			owner = bob
		}
		_, err := svc.CreateRefund(context.Background(), CreateRefundRequest{
			UserID: owner.ID, Name: "Expense", Category: models.CategoryOthers, Amount: float64(i + 1), FileName: testFileName,
		})
		require.NoError(t, err)
	}

	t.Run("defaults", func(t *testing.T) {
		result, err := svc.ListRefunds(context.Background(), ListRefundsRequest{})
		require.NoError(t, err)
		assert.Len(t, result.Refunds, DefaultPerPage)
		assert.Equal(t, Pagination{Page: 1, PerPage: 10, TotalRecords: 12, TotalPages: 2}, result.Pagination)
		assert.True(t, result.Refunds[0].CreatedAt.After(result.Refunds[1].CreatedAt))
	})

	t.Run("second page", func(t *testing.T) {
		result, err := svc.ListRefunds(context.Background(), ListRefundsRequest{Page: 2, PerPage: 5})
		require.NoError(t, err)
		assert.Len(t, result.Refunds, 5)
		assert.Equal(t, 5, store.lastList.offset)
		assert.Equal(t, 3, result.Pagination.TotalPages)
	})

	t.Run("filter by name", func(t *testing.T) {
		result, err := svc.ListRefunds(context.Background(), ListRefundsRequest{UserName: " Bob "})
		require.NoError(t, err)
		assert.Equal(t, 4, result.Pagination.TotalRecords)
		for _, r := range result.Refunds {
			assert.Equal(t, bob.ID, r.UserID)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		result, err := svc.ListRefunds(context.Background(), ListRefundsRequest{UserName: "Carol"})
		require.NoError(t, err)
		assert.Empty(t, result.Refunds)
		assert.Equal(t, 1, result.Pagination.TotalPages)
	})

	t.Run("invalid perpage", func(t *testing.T) {
		_, err := svc.ListRefunds(context.Background(), ListRefundsRequest{PerPage: 1000})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestRefundServiceWithoutRepository(t *testing.T) {
	svc := NewRefundService()
	_, err := svc.GetRefund(context.Background(), GetRefundRequest{ID: uuid.New()})
	assert.Error(t, err)
}
