// Package server exposes the dashboard over HTTP. Routing and handler
// structure follow the usual gin layout: a public auth group, then a
// bearer-token protected API group with one handler set per resource.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hollis/pennyflow/internal/auth"
	"github.com/hollis/pennyflow/internal/engine"
	"github.com/hollis/pennyflow/internal/report"
	"github.com/hollis/pennyflow/internal/service"
)

// Server bundles the HTTP surface with its dependencies.
type Server struct {
	store   service.Storage
	engine  *engine.Engine
	reports *report.Generator
	auth    *auth.Authenticator
	logger  *slog.Logger
	http    *http.Server
}

// New creates a server over the given dependencies.
func New(store service.Storage, eng *engine.Engine, reports *report.Generator, authn *auth.Authenticator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:   store,
		engine:  eng,
		reports: reports,
		auth:    authn,
		logger:  logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	protected := api.Group("")
	protected.Use(s.requireAuth())

	protected.GET("/me", s.handleGetMe)

	protected.POST("/accounts", s.handleCreateAccount)
	protected.GET("/accounts", s.handleListAccounts)
	protected.GET("/accounts/:id", s.handleGetAccount)
	protected.PUT("/accounts/:id/balance", s.handleUpdateAccountBalance)
	protected.DELETE("/accounts/:id", s.handleDeleteAccount)

	protected.GET("/categories", s.handleListCategories)
	protected.POST("/categories", s.handleUpsertCategory)
	protected.DELETE("/categories/:id", s.handleDeleteCategory)
	protected.POST("/categories/defaults", s.handleProvisionDefaults)

	protected.POST("/transactions", s.handleCreateTransaction)
	protected.GET("/transactions", s.handleListTransactions)
	protected.GET("/transactions/:id", s.handleGetTransaction)
	protected.DELETE("/transactions/:id", s.handleDeleteTransaction)
	protected.GET("/transactions/:id/suggestion", s.handleSuggestCategory)
	protected.PUT("/transactions/:id/category", s.handleAssignCategory)
	protected.POST("/transactions/:id/confirm", s.handleConfirmCategory)
	protected.POST("/transactions/import", s.handleImportTransactions)
	protected.GET("/transactions/export", s.handleExportTransactions)

	protected.POST("/budgets", s.handleUpsertBudget)
	protected.GET("/budgets", s.handleListBudgets)
	protected.DELETE("/budgets/:id", s.handleDeleteBudget)

	protected.POST("/goals", s.handleCreateGoal)
	protected.GET("/goals", s.handleListGoals)
	protected.PUT("/goals/:id/progress", s.handleUpdateGoalProgress)
	protected.DELETE("/goals/:id", s.handleDeleteGoal)

	protected.POST("/holdings", s.handleCreateHolding)
	protected.GET("/holdings", s.handleListHoldings)
	protected.DELETE("/holdings/:id", s.handleDeleteHolding)

	protected.GET("/reports/overview", s.handleOverview)
	protected.GET("/reports/breakdown", s.handleBreakdown)
	protected.GET("/reports/trend", s.handleTrend)
	protected.GET("/reports/budgets", s.handleBudgetProgress)
	protected.GET("/reports/net-worth", s.handleNetWorth)

	return r
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
