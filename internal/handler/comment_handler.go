package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storyhub/internal/dto"
	"storyhub/internal/service"
)

type CommentHandler struct {
	comments service.CommentService
}

func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/stories/:id/comments", h.ListByStory)

	authed.POST("/comments", h.Create)
	authed.PUT("/comments/:id", h.Update)
	authed.DELETE("/comments/:id", h.Delete)
	authed.POST("/comments/:id/replies", h.CreateReply)
	authed.DELETE("/replies/:id", h.DeleteReply)
}

func (h *CommentHandler) ListByStory(c *gin.Context) {
	storyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	var chapterID *int64
	if raw := c.Query("chapter_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter id"})
			return
		}
		chapterID = &id
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	comments, total, err := h.comments.GetByStory(c.Request.Context(), storyID, chapterID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list comments"})
		return
	}
	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Items:    comments,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFrom(c)
	comment, err := h.comments.Submit(c.Request.Context(), actor.ID, actor.Name, req.StoryID, req.ChapterID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not post comment"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) CreateReply(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFrom(c)
	reply, err := h.comments.SubmitReply(c.Request.Context(), actor.ID, actor.Name, commentID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not post reply"})
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFrom(c)
	comment, err := h.comments.Update(c.Request.Context(), commentID, actor.ID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not the comment author"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update comment"})
		}
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	actor := actorFrom(c)
	if err := h.comments.Delete(c.Request.Context(), commentID, actor.ID, isAdmin(c)); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not the comment author"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete comment"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) DeleteReply(c *gin.Context) {
	replyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reply id"})
		return
	}

	actor := actorFrom(c)
	if err := h.comments.DeleteReply(c.Request.Context(), replyID, actor.ID, isAdmin(c)); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not the reply author"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete reply"})
		return
	}
	c.Status(http.StatusNoContent)
}
