// Package api serves the Store over JSON HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/streakhq/internal/service"
)

const (
	DefaultAddr   = "127.0.0.1:8787"
	maxImportSize = 5 << 20 // 5MB
)

// Server is the HTTP front end for a Store.
type Server struct {
	store  *service.Store
	router *gin.Engine
	logger *slog.Logger
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer builds the router. The Store must already be open.
func NewServer(store *service.Store, opts ...Option) *Server {
	s := &Server{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.router = router

	api := router.Group("/api")
	{
		api.GET("/state", s.handleState)
		api.POST("/reconcile", s.handleReconcile)

		api.POST("/streaks/toggle", s.handleToggleStreak)

		api.POST("/tasks", s.handleAddTasks)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/toggle", s.handleToggleTask)

		api.POST("/projects", s.handleAddProject)
		api.PUT("/projects/:id/status", s.handleProjectStatus)
		api.DELETE("/projects/:id", s.handleDeleteProject)
		api.POST("/projects/:id/suggest", s.handleSuggestProjectTasks)

		api.POST("/categories", s.handleAddCategory)
		api.PUT("/categories/:id", s.handleRenameCategory)
		api.DELETE("/categories/:id", s.handleDeleteCategory)
		api.GET("/categories/:id/mini-tasks", s.handleSuggestMiniTasks)

		api.POST("/bank/post", s.handlePostXP)
		api.POST("/ledger", s.handleAddLedgerEntry)
		api.POST("/shields/:category", s.handleBuyShield)
		api.PUT("/settings", s.handleUpdateSettings)

		api.GET("/export", s.handleExport)
		api.POST("/import", s.handleImport)
		api.POST("/reset", s.handleReset)

		api.POST("/sync/pull", s.handlePull)
		api.POST("/sync/push", s.handlePush)
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.Info("http_request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(started).Milliseconds(),
		)
	}
}
