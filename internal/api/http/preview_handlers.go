package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/GridBoard/internal/domain/format"
	"github.com/GriffinCanCode/GridBoard/internal/domain/session"
)

// OpenPreview starts an editing session on one window
func (h *Handlers) OpenPreview(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	var req struct {
		ProjectID string `json:"project_id"`
		WindowID  string `json:"window_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, found := wsp.OpenPreview(req.ProjectID, req.WindowID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"window": window,
		"html":   h.renderer.Render(window.Content, window.ContentType),
	})
}

// ClosePreview ends the editing session
func (h *Handlers) ClosePreview(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	wsp.ClosePreview()
	c.JSON(http.StatusOK, gin.H{"closed": true})
}

// EditPreview commits one content edit to the previewed window
func (h *Handlers) EditPreview(c *gin.Context) {
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

	if !wsp.Edit(req.Content) {
		c.JSON(http.StatusConflict, gin.H{"error": "no preview open"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": req.Content})
}

// FormatPreview applies a formatting action to the current selection
func (h *Handlers) FormatPreview(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	var req struct {
		Selection session.Selection `json:"selection"`
		Kind      string            `json:"kind"`
		Param     string            `json:"param"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := format.Kind(req.Kind)
	if !format.Known(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format kind"})
		return
	}

	content, applied := wsp.Format(req.Selection, kind, req.Param)
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "no preview open"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// UndoPreview steps the editing session back one edit
func (h *Handlers) UndoPreview(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	content, moved := wsp.Undo()
	c.JSON(http.StatusOK, gin.H{
		"moved":   moved,
		"content": content,
	})
}

// RedoPreview steps the editing session forward one edit
func (h *Handlers) RedoPreview(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	content, moved := wsp.Redo()
	c.JSON(http.StatusOK, gin.H{
		"moved":   moved,
		"content": content,
	})
}
