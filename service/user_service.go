package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"refund-backend/models"
	"refund-backend/repository"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// UserStore is the persistence the user and session services need
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserService handles registration
type UserService struct {
	userRepo   UserStore
	bcryptCost int
}

// UserServiceOption is a functional option for UserService
type UserServiceOption func(*UserService)

// WithUserRepository sets the user repository
func WithUserRepository(repo UserStore) UserServiceOption {
	return func(s *UserService) {
		s.userRepo = repo
	}
}

// WithBcryptCost overrides the password hashing cost
func WithBcryptCost(cost int) UserServiceOption {
	return func(s *UserService) {
		s.bcryptCost = cost
	}
}

// NewUserService creates a new user service
func NewUserService(opts ...UserServiceOption) *UserService {
	s := &UserService{bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUserRequest represents a request to register a user
type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     models.Role // defaults to employee
}

// CreateUserResult represents the result of registering a user
type CreateUserResult struct {
	User *models.User
}

// CreateUser registers a user with a bcrypt-hashed password
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}
	email := normalizeEmail(req.Email)
	if !strings.Contains(email, "@") {
		return nil, invalid("email", "Invalid e-mail")
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, invalid("password", fmt.Sprintf("Password must have at least %d characters", minPasswordLength))
	}
	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if !role.Valid() {
		return nil, invalid("role", "Unknown role")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &CreateUserResult{User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
