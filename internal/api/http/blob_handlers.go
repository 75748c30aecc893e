package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/GridBoard/internal/domain/classify"
	"github.com/GriffinCanCode/GridBoard/internal/storage/sqlite"
)

// maxImportSize caps uploaded file size at 20 MiB
const maxImportSize = 20 << 20

// ImportFile classifies an uploaded file and places a window for it.
// Images inline as data URIs; PDFs store as blobs and the window holds
// the serving handle.
func (h *Handlers) ImportFile(c *gin.Context) {
	wsp, ok := h.workspace(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	if file.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	result, err := h.classifier(c).File(data)
	if err != nil {
		if errors.Is(err, classify.ErrUnsupported) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("file import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}

	window, added := wsp.Board.AddWindow(c.Param("id"), result.Content, result.Type, "")
	if !added {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusCreated, window)
}

// ServeBlob streams a stored blob by id
func (h *Handlers) ServeBlob(c *gin.Context) {
	blob, err := h.blobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "blob not found"})
			return
		}
		h.logger.Error("blob fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "blob fetch failed"})
		return
	}

	c.Data(http.StatusOK, blob.ContentType, blob.Data)
}
