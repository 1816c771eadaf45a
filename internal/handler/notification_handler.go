package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storyhub/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetUnread)
	rg.POST("/:id/read", h.MarkAsRead)
	rg.POST("/read-all", h.MarkAllAsRead)
}

func (h *NotificationHandler) GetUnread(c *gin.Context) {
	actor := actorFrom(c)
	notifications, err := h.notifications.GetUnread(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	actor := actorFrom(c)
	if err := h.notifications.MarkAsRead(c.Request.Context(), actor.ID, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	actor := actorFrom(c)
	if err := h.notifications.MarkAllAsRead(c.Request.Context(), actor.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark notifications"})
		return
	}
	c.Status(http.StatusNoContent)
}
