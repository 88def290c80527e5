package service

import (
	"context"
	"errors"
	"time"

	"refund-backend/models"
	"refund-backend/repository"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *models.User) (string, time.Time, error)
}

// SessionService handles login
type SessionService struct {
	userRepo UserStore
	tokens   TokenIssuer
}

// SessionServiceOption is a functional option for SessionService
type SessionServiceOption func(*SessionService)

// SessionWithUserRepository sets the user repository
func SessionWithUserRepository(repo UserStore) SessionServiceOption {
	return func(s *SessionService) {
		s.userRepo = repo
	}
}

// SessionWithTokenIssuer sets the token issuer
func SessionWithTokenIssuer(tokens TokenIssuer) SessionServiceOption {
	return func(s *SessionService) {
		s.tokens = tokens
	}
}

// NewSessionService creates a new session service
func NewSessionService(opts ...SessionServiceOption) *SessionService {
	s := &SessionService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSessionRequest represents login credentials
type CreateSessionRequest struct {
	Email    string
	Password string
}

// CreateSessionResult represents an issued session
type CreateSessionResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// CreateSession verifies credentials and issues an access token.
// Unknown e-mail and wrong password return the same error.
func (s *SessionService) CreateSession(ctx context.Context, req CreateSessionRequest) (*CreateSessionResult, error) {
	if s.userRepo == nil || s.tokens == nil {
		return nil, errors.New("session service not configured")
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &CreateSessionResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
