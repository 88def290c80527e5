package handlers

import (
	"log/slog"
	"net/http"

	"refund-backend/middleware"
	"refund-backend/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig collects everything the HTTP layer is wired from
type RouterConfig struct {
	Logger         *slog.Logger
	Tokens         middleware.TokenParser
	UploadHandler  *UploadHandler
	RefundHandler  *RefundHandler
	UserHandler    *UserHandler
	AllowedOrigins []string // empty allows any origin
}

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	r.POST("/users", cfg.UserHandler.CreateUser)
	r.POST("/sessions", cfg.UserHandler.CreateSession)
	r.GET("/uploads/:filename", cfg.UploadHandler.GetFile)

	// Private routes
	private := r.Group("/", middleware.EnsureAuthenticated(cfg.Tokens))
	{
		private.POST("/uploads", middleware.RequireRole(models.RoleEmployee), cfg.UploadHandler.UploadFile)

		private.POST("/refunds", middleware.RequireRole(models.RoleEmployee), cfg.RefundHandler.CreateRefund)
		private.GET("/refunds", middleware.RequireRole(models.RoleManager), cfg.RefundHandler.ListRefunds)
		private.GET("/refunds/:id", middleware.RequireRole(models.RoleEmployee, models.RoleManager), cfg.RefundHandler.GetRefund)
	}

	return r
}
