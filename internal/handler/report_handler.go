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

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes splits the reporter side from the moderator side; the queue
// and its transitions are admin-only.
func (h *ReportHandler) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.POST("/reports", h.Flag)

	admin.GET("/reports", h.List)
	admin.POST("/reports/:id/resolve", h.Resolve)
}

func (h *ReportHandler) Flag(c *gin.Context) {
	var req dto.FlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.Flag(c.Request.Context(), actorFrom(c), req.TargetType, req.TargetID, req.Reason)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not file report"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", models.ReportStatusPending)

	reports, err := h.reports.ListByStatus(c.Request.Context(), status)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) Resolve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	var req dto.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.Resolve(c.Request.Context(), actorFrom(c), id, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "report already resolved"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve report"})
		}
		return
	}
	c.JSON(http.StatusOK, report)
}
