package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storyhub/internal/dto"
	"storyhub/internal/progress"
	"storyhub/internal/service"
)

type ProgressHandler struct {
	store   *progress.Store
	stories service.StoryService
}

func NewProgressHandler(store *progress.Store, stories service.StoryService) *ProgressHandler {
	return &ProgressHandler{store: store, stories: stories}
}

// RegisterRoutes registers the reading-progress routes. All of them sit
// behind OptionalAuth: anonymous readers get the device-local history.
func (h *ProgressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.History)
	rg.POST("", h.Record)
	rg.DELETE("", h.Clear)
	rg.GET("/start/:story_id", h.ResolveStart)
}

func (h *ProgressHandler) Record(c *gin.Context) {
	var req dto.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	story, err := h.stories.Get(ctx, req.StoryID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}
	chapter, err := h.stories.GetChapter(ctx, req.ChapterID)
	if err != nil || chapter.StoryID != story.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}

	if err := h.store.RecordProgress(ctx, readerFrom(c), story, chapter); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProgressHandler) History(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.store.History(ctx, readerFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryResponse{
			StoryID:      e.StoryID,
			StoryTitle:   e.StoryTitle,
			StoryCover:   e.StoryCover,
			ChapterID:    e.ChapterID,
			ChapterTitle: e.ChapterTitle,
			LastReadAt:   e.LastReadAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProgressHandler) Clear(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deleted, err := h.store.ClearHistory(ctx, readerFrom(c))
	if err != nil {
		// Partial deletes still report what went through.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "history not fully cleared",
			"deleted": deleted,
		})
		return
	}
	c.JSON(http.StatusOK, dto.ClearHistoryResponse{Deleted: deleted})
}

func (h *ProgressHandler) ResolveStart(c *gin.Context) {
	storyID, err := strconv.ParseInt(c.Param("story_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	story, err := h.stories.Get(ctx, storyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	chapter, err := h.store.ResolveStart(ctx, readerFrom(c), story)
	if errors.Is(err, progress.ErrNoUnits) {
		c.JSON(http.StatusNotFound, gin.H{"error": "story has no chapters"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve start"})
		return
	}
	c.JSON(http.StatusOK, chapter)
}
