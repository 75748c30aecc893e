package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/GridBoard/internal/api/middleware"
	"github.com/GriffinCanCode/GridBoard/internal/domain/session"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// OpenWorkspace hydrates and returns the caller's workspace state
func (h *Handlers) OpenWorkspace(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}
	h.workspaceState(c, wsp)
}

// GetWorkspace returns the current workspace state
func (h *Handlers) GetWorkspace(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}
	h.workspaceState(c, wsp)
}

// CloseWorkspace flushes and tears down the caller's workspace
func (h *Handlers) CloseWorkspace(c *gin.Context) {
	accountID := middleware.AccountID(c)

	if wsp, ok := h.workspaces.Get(accountID); ok && wsp.Coordinator != nil {
		wsp.Coordinator.Flush(c.Request.Context())
	}
	removed := h.workspaces.Remove(accountID)

	c.JSON(http.StatusOK, gin.H{"closed": removed})
}

func (h *Handlers) workspaceState(c *gin.Context, wsp *session.Workspace) {
	projects := wsp.Board.Projects()
	windows := make(map[string][]types.Window, len(projects))
	for _, p := range projects {
		windows[p.ID] = wsp.Board.Windows(p.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":          projects,
		"windows":           windows,
		"active_project_id": wsp.Board.ActiveProjectID(),
	})
}

// AddProject creates a project and makes it active
func (h *Handlers) AddProject(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	project := wsp.Board.AddProject()
	c.JSON(http.StatusCreated, project)
}

// CloseProject removes a project. The last project cannot be closed.
func (h *Handlers) CloseProject(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if !wsp.Board.CloseProject(projectID) {
		c.JSON(http.StatusConflict, gin.H{"error": "project not found or last project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"closed":            true,
		"active_project_id": wsp.Board.ActiveProjectID(),
	})
}

// RenameProject updates a project's name
func (h *Handlers) RenameProject(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID := c.Param("id")
	renamed := wsp.Board.RenameProject(projectID, req.Name)

	c.JSON(http.StatusOK, gin.H{
		"renamed":    renamed,
		"project_id": projectID,
	})
}

// ActivateProject switches the active project
func (h *Handlers) ActivateProject(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	switched := wsp.Board.SwitchActive(projectID)

	c.JSON(http.StatusOK, gin.H{
		"activated":         switched,
		"active_project_id": wsp.Board.ActiveProjectID(),
	})
}

// AddWindow classifies pasted content and places a window for it
func (h *Handlers) AddWindow(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	var req struct {
		Content    string `json:"content"`
		Background string `json:"bgColor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.classifier(c).Text(req.Content)
	window, added := wsp.Board.AddWindow(c.Param("id"), result.Content, result.Type, req.Background)
	if !added {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusCreated, window)
}

// RemoveWindow deletes a window
func (h *Handlers) RemoveWindow(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	removed := wsp.Board.RemoveWindow(c.Param("id"), c.Param("win"))
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// UpdateWindowContent replaces a window's content
func (h *Handlers) UpdateWindowContent(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := wsp.Board.UpdateWindowContent(c.Param("id"), c.Param("win"), req.Content)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// UpdateWindowStyle replaces a window's background style
func (h *Handlers) UpdateWindowStyle(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	var req struct {
		Background string `json:"bgColor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := wsp.Board.UpdateWindowStyle(c.Param("id"), c.Param("win"), req.Background)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// ApplyLayout reconciles grid feedback into the stored windows
func (h *Handlers) ApplyLayout(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	var feedback []types.LayoutItem
	if err := c.ShouldBindJSON(&feedback); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied := wsp.Board.ApplyLayoutFeedback(c.Param("id"), feedback)
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

// RenderWindow returns the display HTML fragment for a window
func (h *Handlers) RenderWindow(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	window, found := wsp.Board.Window(c.Param("id"), c.Param("win"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"window_id":    window.ID,
		"content_type": window.ContentType,
		"html":         h.renderer.Render(window.Content, window.ContentType),
	})
}

// Stats returns board counters for the caller's workspace
func (h *Handlers) Stats(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, wsp.Board.Stats())
}
