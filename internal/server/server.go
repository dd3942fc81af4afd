package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"panel/internal/config"
	"panel/internal/handler"
	"panel/internal/middleware"
	"panel/internal/repository"
	"panel/internal/service"
)

type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger, notifier service.Notifier) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigin))

	s := &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes(db, notifier)

	return s
}

func (s *Server) setupRoutes(db *sqlx.DB, notifier service.Notifier) {
	userRepo := repository.NewUserRepository(db, s.logger)
	notificationRepo := repository.NewNotificationRepository(db, s.logger)

	tokenService := service.NewTokenService([]byte(s.cfg.Auth.JWTSecret))
	authService := service.NewAuthService(userRepo, tokenService, s.logger)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, notifier, s.logger)

	authHandler := handler.NewAuthHandler(authService, notificationService, s.logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/login", authHandler.Login)

	authRequired := middleware.AuthRequired(tokenService, s.logger)

	profileGroup := s.router.Group("/api/auth")
	profileGroup.Use(authRequired)
	{
		profileGroup.GET("/profile", authHandler.GetProfile)
		profileGroup.PUT("/profile", authHandler.UpdateProfile)
		profileGroup.PUT("/profile/avatar", authHandler.UpdateAvatar)
		profileGroup.POST("/check-password", authHandler.CheckPassword)
		profileGroup.POST("/change-password", authHandler.ChangePassword)
	}

	notificationGroup := s.router.Group("/api/notifications")
	notificationGroup.Use(authRequired)
	{
		notificationGroup.GET("", notificationHandler.List)
		notificationGroup.POST("/:id/read", notificationHandler.MarkRead)
		notificationGroup.POST("/mark-all-read", notificationHandler.MarkAllRead)
		notificationGroup.DELETE("/:id", notificationHandler.Delete)
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
