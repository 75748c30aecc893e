// Package server assembles the HTTP surface: storage, auth, workspaces,
// middleware, and routes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/GridBoard/internal/api/http"
	"github.com/GriffinCanCode/GridBoard/internal/api/middleware"
	"github.com/GriffinCanCode/GridBoard/internal/api/ws"
	"github.com/GriffinCanCode/GridBoard/internal/domain/session"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/config"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/GridBoard/internal/providers/auth"
	"github.com/GriffinCanCode/GridBoard/internal/providers/blob"
	"github.com/GriffinCanCode/GridBoard/internal/providers/persist"
	"github.com/GriffinCanCode/GridBoard/internal/providers/render"
	"github.com/GriffinCanCode/GridBoard/internal/storage/sqlite"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlite.DB
	workspaces *session.Manager
	logger     *logging.Logger
}

// New builds a fully wired server
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	db, err := sqlite.New(cfg.Store.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewWith(registry)

	accounts := sqlite.NewAccountRepository(db)
	projects := sqlite.NewProjectRepository(db)
	blobs := blob.NewStore(sqlite.NewBlobRepository(db))

	authSvc := auth.NewService(accounts, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	local := persist.NewLocal(authSvc, projects)

	// Workspaces sync against the remote store when one is configured,
	// otherwise straight into the embedded SQLite store.
	var store session.PersistenceClient = local
	if cfg.Store.RemoteURL != "" {
		store = persist.NewRemote(cfg.Store.RemoteURL)
	}

	workspaces := session.NewManager(logger.Named("workspaces")).WithMetrics(metrics)
	hub := ws.NewHub(logger.Named("stream")).WithMetrics(metrics)

	handlers := apihttp.NewHandlers(
		cfg,
		authSvc,
		workspaces,
		store,
		local,
		render.NewRenderer(),
		blobs,
		hub,
		logger.Named("http"),
	).WithMetrics(metrics)

	if cfg.Store.BackupDir != "" {
		backup, err := session.NewBackup(cfg.Store.BackupDir)
		if err != nil {
			logger.Warn("backup dir unavailable, snapshots disabled", zap.Error(err))
		} else {
			handlers.WithBackup(backup)
		}
	}

	wsHandler := ws.NewHandler(hub, authSvc, logger.Named("stream"))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit))
	}

	registerRoutes(router, handlers, wsHandler, authSvc, registry)

	return &Server{
		cfg:        cfg,
		router:     router,
		db:         db,
		workspaces: workspaces,
		logger:     logger,
	}, nil
}

func registerRoutes(router *gin.Engine, handlers *apihttp.Handlers, wsHandler *ws.Handler, authSvc *auth.Service, registry *prometheus.Registry) {
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.POST("/register", handlers.Register)
	router.POST("/login", handlers.Login)

	router.GET("/blobs/:id", handlers.ServeBlob)

	authed := router.Group("/", middleware.Auth(authSvc))
	{
		authed.POST("/logout", handlers.Logout)
		authed.GET("/user", handlers.GetProfile)
		authed.PUT("/user-data", handlers.ReplaceUserData)

		authed.POST("/workspace/open", handlers.OpenWorkspace)
		authed.GET("/workspace", handlers.GetWorkspace)
		authed.DELETE("/workspace", handlers.CloseWorkspace)
		authed.GET("/workspace/stats", handlers.Stats)

		authed.POST("/projects", handlers.AddProject)
		authed.DELETE("/projects/:id", handlers.CloseProject)
		authed.PUT("/projects/:id/name", handlers.RenameProject)
		authed.POST("/projects/:id/activate", handlers.ActivateProject)
		authed.PUT("/projects/:id/layout", handlers.ApplyLayout)

		authed.POST("/projects/:id/windows", handlers.AddWindow)
		authed.POST("/projects/:id/windows/import", handlers.ImportFile)
		authed.DELETE("/projects/:id/windows/:win", handlers.RemoveWindow)
		authed.PUT("/projects/:id/windows/:win/content", handlers.UpdateWindowContent)
		authed.PUT("/projects/:id/windows/:win/style", handlers.UpdateWindowStyle)
		authed.GET("/projects/:id/windows/:win/render", handlers.RenderWindow)

		authed.POST("/preview/open", handlers.OpenPreview)
		authed.POST("/preview/close", handlers.ClosePreview)
		authed.PUT("/preview/content", handlers.EditPreview)
		authed.POST("/preview/format", handlers.FormatPreview)
		authed.POST("/preview/undo", handlers.UndoPreview)
		authed.POST("/preview/redo", handlers.RedoPreview)
	}

	router.GET("/stream", wsHandler.HandleConnection)
}

// Router exposes the gin engine, primarily for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the context is cancelled, then drains
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return s.Close()
}

// Close flushes workspaces and releases resources
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.workspaces.CloseAll(ctx)
	return s.db.Close()
}
