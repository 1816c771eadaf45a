package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storyhub/internal/dto"
	"storyhub/internal/models"
	"storyhub/internal/service"
)

type StoryHandler struct {
	stories service.StoryService
}

func NewStoryHandler(stories service.StoryService) *StoryHandler {
	return &StoryHandler{stories: stories}
}

// RegisterRoutes splits reads from writes; the caller decides which group
// carries auth middleware.
func (h *StoryHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:id", h.Get)
	public.GET("/:id/chapters", h.ListChapters)
	public.GET("/:id/chapters/:chapter_id", h.GetChapter)

	authed.POST("", h.Create)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

func (h *StoryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	stories, total, err := h.stories.List(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list stories"})
		return
	}
	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Items:    stories,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *StoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	story, err := h.stories.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) ListChapters(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	chapters, err := h.stories.ListChapters(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list chapters"})
		return
	}
	c.JSON(http.StatusOK, chapters)
}

func (h *StoryHandler) GetChapter(c *gin.Context) {
	storyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}
	chapterID, err := strconv.ParseInt(c.Param("chapter_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
		return
	}

	chapter, err := h.stories.GetChapter(c.Request.Context(), chapterID)
	if err != nil || chapter.StoryID != storyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *StoryHandler) Create(c *gin.Context) {
	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storyType := req.Type
	if storyType == "" {
		storyType = models.StoryTypeText
	}

	actor := actorFrom(c)
	story := &models.Story{
		Title:       req.Title,
		Author:      req.Author,
		Type:        storyType,
		Status:      models.StoryStatusDraft,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		OwnerID:     &actor.ID,
	}
	if err := h.stories.Create(c.Request.Context(), story); err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create story"})
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	var req dto.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	story, err := h.stories.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}
	if !h.canManage(c, story) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the story owner"})
		return
	}

	if req.Title != "" {
		story.Title = req.Title
	}
	if req.Description != "" {
		story.Description = req.Description
	}
	if req.CoverURL != "" {
		story.CoverURL = req.CoverURL
	}
	if req.Status != "" {
		story.Status = req.Status
	}
	if err := h.stories.Update(c.Request.Context(), story); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update story"})
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	story, err := h.stories.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}
	if !h.canManage(c, story) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the story owner"})
		return
	}

	if err := h.stories.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete story"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoryHandler) canManage(c *gin.Context, story *models.Story) bool {
	if isAdmin(c) {
		return true
	}
	actor := actorFrom(c)
	return story.OwnerID != nil && *story.OwnerID == actor.ID
}
