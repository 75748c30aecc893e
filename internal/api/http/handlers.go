// Package http contains the REST handlers for accounts, profiles, and
// live workspace editing.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/GridBoard/internal/api/middleware"
	"github.com/GriffinCanCode/GridBoard/internal/api/ws"
	"github.com/GriffinCanCode/GridBoard/internal/domain/board"
	"github.com/GriffinCanCode/GridBoard/internal/domain/classify"
	"github.com/GriffinCanCode/GridBoard/internal/domain/session"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/config"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/GridBoard/internal/providers/auth"
	"github.com/GriffinCanCode/GridBoard/internal/providers/blob"
	"github.com/GriffinCanCode/GridBoard/internal/providers/persist"
	"github.com/GriffinCanCode/GridBoard/internal/providers/render"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	cfg        *config.Config
	auth       *auth.Service
	workspaces *session.Manager
	store      session.PersistenceClient
	local      *persist.Local
	renderer   *render.Renderer
	blobs      *blob.Store
	hub        *ws.Hub
	backup     *session.Backup
	metrics    *monitoring.Metrics
	logger     *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	cfg *config.Config,
	authSvc *auth.Service,
	workspaces *session.Manager,
	store session.PersistenceClient,
	local *persist.Local,
	renderer *render.Renderer,
	blobs *blob.Store,
	hub *ws.Hub,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		cfg:        cfg,
		auth:       authSvc,
		workspaces: workspaces,
		store:      store,
		local:      local,
		renderer:   renderer,
		blobs:      blobs,
		hub:        hub,
		logger:     logger,
	}
}

// WithMetrics attaches metrics collection
func (h *Handlers) WithMetrics(metrics *monitoring.Metrics) *Handlers {
	h.metrics = metrics
	return h
}

// WithBackup enables per-account local snapshots alongside sync
func (h *Handlers) WithBackup(backup *session.Backup) *Handlers {
	h.backup = backup
	return h
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "GridBoard",
		"version": "1.0.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"workspaces": h.workspaces.Count(),
	})
}

// Register creates a new account
func (h *Handlers) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acct, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrDuplicateAccount):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			h.logger.Error("registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    acct.ID,
		"name":  acct.Name,
		"email": acct.Email,
	})
}

// Login checks credentials and opens a session
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      sess.Token,
		"user_id":    sess.AccountID,
		"expires_at": sess.ExpiresAt.Unix(),
	})
}

// Logout ends the session and closes any live workspace
func (h *Handlers) Logout(c *gin.Context) {
	accountID := middleware.AccountID(c)
	h.workspaces.Remove(accountID)
	h.auth.Logout(middleware.Token(c))

	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// GetProfile returns the account's stored profile
func (h *Handlers) GetProfile(c *gin.Context) {
	profile, err := h.local.FetchProfile(c.Request.Context(), middleware.Token(c))
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		h.logger.Error("profile fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile fetch failed"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ReplaceUserData swaps the account's stored project set
func (h *Handlers) ReplaceUserData(c *gin.Context) {
	var req []types.ProjectRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.local.ReplaceProjects(c.Request.Context(), middleware.Token(c), req)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		h.logger.Error("user data replace failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	c.JSON(http.StatusOK, saved)
}

// workspace fetches or builds the caller's live workspace. Building
// hydrates from the persistence store before any mutation is accepted.
func (h *Handlers) workspace(c *gin.Context) (*session.Workspace, bool) {
	accountID := middleware.AccountID(c)
	token := middleware.Token(c)

	wsp, err := h.workspaces.GetOrCreate(accountID, func() (*session.Workspace, error) {
		store := board.NewManager(h.logger.Named("board"))
		if h.metrics != nil {
			store.WithMetrics(h.metrics)
		}

		coord := session.NewCoordinator(store, h.store, token, h.cfg.Sync.Debounce, h.logger.Named("sync"))
		if h.metrics != nil {
			coord.WithMetrics(h.metrics)
		}
		if h.backup != nil {
			coord.WithBackup(h.backup, accountID)
		}

		if err := coord.Hydrate(c.Request.Context()); err != nil {
			return nil, err
		}

		if h.hub != nil {
			store.Subscribe(func(e board.Event) {
				h.hub.Broadcast(accountID, e)
			})
		}

		return session.NewWorkspace(accountID, store, coord), nil
	})
	if err != nil {
		h.logger.Error("workspace hydration failed",
			zap.String("account_id", accountID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "workspace hydration failed"})
		return nil, false
	}

	return wsp, true
}

// classifier builds a content classifier bound to the caller's blob
// storage
func (h *Handlers) classifier(c *gin.Context) *classify.Classifier {
	return classify.New(h.blobs.For(middleware.AccountID(c)))
}
