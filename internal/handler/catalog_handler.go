package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storyhub/internal/ingestion/otruyen"
)

// CatalogHandler proxies browse and search against the external comic catalog
// so the frontend never talks to it directly.
type CatalogHandler struct {
	comics *otruyen.Client
}

func NewCatalogHandler(comics *otruyen.Client) *CatalogHandler {
	return &CatalogHandler{comics: comics}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
	rg.GET("/latest", h.Latest)
	rg.GET("/pages", h.ChapterPages)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	items, err := h.comics.Search(ctx, keyword)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog search failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) Latest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	items, err := h.comics.Latest(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog listing failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ChapterPages resolves the page-image list for an imported comic chapter.
// The ref query parameter is the chapter's external API reference.
func (h *CatalogHandler) ChapterPages(c *gin.Context) {
	ref := c.Query("ref")
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ref is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	pages, err := h.comics.GetChapterPages(ctx, ref)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load chapter pages"})
		return
	}
	c.JSON(http.StatusOK, pages)
}
