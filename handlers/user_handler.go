package handlers

import (
	"log/slog"
	"net/http"

	"refund-backend/models"
	"refund-backend/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles registration and login
type UserHandler struct {
	userService    *service.UserService
	sessionService *service.SessionService
	logger         *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService, sessionService *service.SessionService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService:    userService,
		sessionService: sessionService,
		logger:         logger.With(slog.String("component", "user_handler")),
	}
}

// CreateUserRequest represents the request body for registering a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.userService.CreateUser(c.Request.Context(), service.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, result.User)
}

// CreateSessionRequest represents login credentials
type CreateSessionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateSession handles POST /sessions
func (h *UserHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.sessionService.CreateSession(c.Request.Context(), service.CreateSessionRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       result.User,
	})
}
