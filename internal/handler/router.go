package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyhub/internal/middleware"
	"storyhub/internal/service"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Story         *StoryHandler
	Progress      *ProgressHandler
	Import        *ImportHandler
	Catalog       *CatalogHandler
	Comment       *CommentHandler
	Report        *ReportHandler
	Notification  *NotificationHandler
	AuthService   service.AuthService
	AllowedOrigin []string
}

// NewRouter mounts all API routes under /api/v1. Reads are public, progress
// works for anonymous readers too, writes need a token and the moderation
// queue needs the admin role.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(h.AllowedOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	h.Auth.RegisterRoutes(v1.Group("/auth"))

	publicStories := v1.Group("/stories")
	publicStories.Use(middleware.OptionalAuth(h.AuthService))
	authedStories := v1.Group("/stories")
	authedStories.Use(middleware.AuthMiddleware(h.AuthService))
	h.Story.RegisterRoutes(publicStories, authedStories)

	progressGroup := v1.Group("/progress")
	progressGroup.Use(middleware.OptionalAuth(h.AuthService))
	h.Progress.RegisterRoutes(progressGroup)

	importGroup := v1.Group("/import")
	importGroup.Use(middleware.OptionalAuth(h.AuthService))
	importAdmin := v1.Group("/import")
	importAdmin.Use(middleware.AuthMiddleware(h.AuthService), middleware.RequireAdmin())
	h.Import.RegisterRoutes(importGroup, importAdmin)

	catalogGroup := v1.Group("/catalog")
	h.Catalog.RegisterRoutes(catalogGroup)

	publicSocial := v1.Group("")
	authedSocial := v1.Group("")
	authedSocial.Use(middleware.AuthMiddleware(h.AuthService))
	h.Comment.RegisterRoutes(publicSocial, authedSocial)

	adminGroup := v1.Group("")
	adminGroup.Use(middleware.AuthMiddleware(h.AuthService), middleware.RequireAdmin())
	h.Report.RegisterRoutes(authedSocial, adminGroup)

	notificationGroup := v1.Group("/notifications")
	notificationGroup.Use(middleware.AuthMiddleware(h.AuthService))
	h.Notification.RegisterRoutes(notificationGroup)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
