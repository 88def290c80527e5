package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"refund-backend/models"
	"refund-backend/repository"

	"github.com/google/uuid"
)

type memoryUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]*models.User)}
}

func (s *memoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return repository.ErrDuplicate
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type memoryRefundStore struct {
	refunds  []*models.Refund
	owners   map[uuid.UUID]*models.User
	lastList struct{ limit, offset int }
}

func newMemoryRefundStore() *memoryRefundStore {
	return &memoryRefundStore{owners: make(map[uuid.UUID]*models.User)}
}

func (s *memoryRefundStore) Create(ctx context.Context, refund *models.Refund) error {
	refund.ID = uuid.New()
	refund.CreatedAt = time.Now().Add(time.Duration(len(s.refunds)) * time.Second)
	refund.UpdatedAt = refund.CreatedAt
	copied := *refund
	copied.User = s.owners[refund.UserID]
	s.refunds = append(s.refunds, &copied)
	return nil
}

func (s *memoryRefundStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Refund, error) {
	for _, r := range s.refunds {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memoryRefundStore) matching(filter repository.RefundFilter) []*models.Refund {
	var out []*models.Refund
	for _, r := range s.refunds {
		if filter.UserName == "" || (r.User != nil && strings.Contains(r.User.Name, filter.UserName)) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memoryRefundStore) List(ctx context.Context, filter repository.RefundFilter, limit, offset int) ([]*models.Refund, error) {
	s.lastList.limit, s.lastList.offset = limit, offset
	all := s.matching(filter)
	if offset >= len(all) {
		return []*models.Refund{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (s *memoryRefundStore) Count(ctx context.Context, filter repository.RefundFilter) (int, error) {
	return len(s.matching(filter)), nil
}

type stubTokenIssuer struct {
	issued []*models.User
}

func (s *stubTokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	s.issued = append(s.issued, user)
	return "token-" + user.ID.String(), time.Unix(1700000000, 0), nil
}
