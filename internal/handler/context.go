package handler

import (
	"github.com/gin-gonic/gin"

	"storyhub/internal/progress"
	"storyhub/internal/service"
)

// readerFrom builds the reader identity for the request. Routes behind
// OptionalAuth serve anonymous readers with the shared local partition.
func readerFrom(c *gin.Context) progress.Reader {
	userID, exists := c.Get("userID")
	if !exists {
		return progress.Reader{}
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return progress.Reader{}
	}
	return progress.Reader{ID: id, Authenticated: true}
}

// actorFrom builds the attribution identity for a signed-in request.
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{}
	if v, ok := c.Get("userID"); ok {
		actor.ID, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok {
		actor.Name, _ = v.(string)
	}
	return actor
}

func isAdmin(c *gin.Context) bool {
	v, ok := c.Get("role")
	if !ok {
		return false
	}
	role, _ := v.(string)
	return role == "admin"
}
