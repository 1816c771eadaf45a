package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storyhub/internal/dto"
	"storyhub/internal/importer"
	"storyhub/internal/service"
)

type ImportHandler struct {
	importer      *importer.Importer
	books         importer.BookCatalog
	stories       service.StoryService
	notifications service.NotificationService
}

func NewImportHandler(imp *importer.Importer, books importer.BookCatalog, stories service.StoryService, notifications service.NotificationService) *ImportHandler {
	return &ImportHandler{importer: imp, books: books, stories: stories, notifications: notifications}
}

// RegisterRoutes registers the catalog-import routes. Imports are open to any
// reader because "save to my library" from the catalog browser is the main
// way works enter the store.
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	rg.POST("/works", h.ImportWork)
	rg.POST("/works/open", h.ImportAndOpen)
	rg.POST("/stories/:id/refresh", h.RefreshUnits)
	admin.POST("/books", h.ImportBooks)
}

func (h *ImportHandler) ImportWork(c *gin.Context) {
	var req dto.ImportWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	story, created, err := h.importer.ImportWork(ctx, importer.SourceRef{Source: req.Source, Slug: req.Slug})
	if err != nil {
		var importErr *importer.ImportError
		if errors.As(err, &importErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": importErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"story": story, "created": created})
}

func (h *ImportHandler) ImportAndOpen(c *gin.Context) {
	var req dto.ImportWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	result, err := h.importer.ImportAndOpenFirst(ctx, readerFrom(c), importer.SourceRef{Source: req.Source, Slug: req.Slug})
	if err != nil {
		var importErr *importer.ImportError
		if errors.As(err, &importErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": importErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}

	resp := gin.H{
		"story":     result.Story,
		"created":   result.Created,
		"new_units": result.NewUnits,
		"start":     result.Start,
	}
	if result.RefreshErr != nil {
		resp["refresh_error"] = result.RefreshErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ImportHandler) RefreshUnits(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	story, err := h.stories.Get(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	created, err := h.importer.RefreshUnits(ctx, story)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "created": created})
		return
	}

	if reader := readerFrom(c); reader.Authenticated && created > 0 {
		// Best effort; the refresh result matters more than the ping.
		_ = h.notifications.NotifyNewChapters(ctx, reader.ID, story, created)
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (h *ImportHandler) ImportBooks(c *gin.Context) {
	var req dto.ImportBooksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	created, err := h.importer.ImportPopularBooks(ctx, h.books, req.Language, req.Limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "created": created})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}
