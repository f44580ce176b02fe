package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/VendleServices/vendle-backend/internal/storage"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler streams stored objects. Used with local storage, where no CDN
// fronts the files.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*path", h.Serve)
}

func (h *FileHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	ctx := c.Request.Context()

	exists, err := h.storage.Exists(ctx, path)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	if !exists {
		h.HandleServiceError(c, apperrors.ErrNotFound(nil))
		return
	}

	reader, err := h.storage.Get(ctx, path)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
