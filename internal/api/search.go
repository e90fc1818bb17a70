package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homsent/homsent-chef/backend/internal/export"
	"github.com/homsent/homsent-chef/backend/internal/model"
)

// Search queries well known recipes. An empty query or a failed search is
// reported in the returned global state.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := h.controller(c)
	ctrl.Search(c.Request.Context(), req.Query)
	c.JSON(http.StatusOK, ctrl.Snapshot().Global)
}

func (h *Handler) GetSearch(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller(c).Snapshot().Global)
}

// ToggleGlobalFavorite saves or unsaves a search result by title.
func (h *Handler) ToggleGlobalFavorite(c *gin.Context) {
	r, err := h.controller(c).ToggleGlobalFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) globalRecipe(c *gin.Context) (model.Recipe, bool) {
	r, ok := h.controller(c).GlobalRecipe(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "search result not found"})
	}
	return r, ok
}

// GetSearchResult returns one search result with its embeddable video URL.
func (h *Handler) GetSearchResult(c *gin.Context) {
	r, ok := h.globalRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, RecipeResponse{Recipe: r, EmbedURL: export.YouTubeEmbedURL(r.VideoURL)})
}

// ExportSearchResult exports a search result without saving it first.
func (h *Handler) ExportSearchResult(c *gin.Context) {
	r, ok := h.globalRecipe(c)
	if !ok {
		return
	}
	h.exportRecipe(c, r)
}

func (h *Handler) ShareSearchResult(c *gin.Context) {
	r, ok := h.globalRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, export.RecipeShare(r))
}
