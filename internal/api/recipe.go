package api

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/internal/export"
	"github.com/homsent/homsent-chef/backend/internal/middleware"
	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/service"
)

// GenerateRecipe runs the whole generation flow and returns the resulting
// state. Flow failures are reported in the state, not as HTTP errors.
func (h *Handler) GenerateRecipe(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := h.controller(c)
	ctrl.Generate(c.Request.Context(), req.Ingredients, req.Filters)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) ListRecipes(c *gin.Context) {
	var q service.GalleryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := q.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctrl := h.controller(c)
	recipes := ctrl.Gallery(q)
	c.JSON(http.StatusOK, RecipeListResponse{
		Recipes:   recipes,
		Total:     len(recipes),
		Creations: service.Creations(ctrl.Recipes().List()),
	})
}

func (h *Handler) GetRecipe(c *gin.Context) {
	r, ok := h.controller(c).Recipes().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, RecipeResponse{Recipe: r, EmbedURL: export.YouTubeEmbedURL(r.VideoURL)})
}

func (h *Handler) DeleteRecipe(c *gin.Context) {
	ctrl := h.controller(c)
	if err := ctrl.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	r, err := h.controller(c).ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ExportRecipe streams the recipe as a PDF download, or uploads it and
// returns a link when called with ?delivery=link.
func (h *Handler) ExportRecipe(c *gin.Context) {
	r, ok := h.controller(c).Recipes().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	h.exportRecipe(c, r)
}

func (h *Handler) exportRecipe(c *gin.Context, r model.Recipe) {
	data, err := export.RecipePDF(r)
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", service.ErrExport, err))
		return
	}
	fileName := export.FileName(r.Title)

	if c.Query("delivery") == "link" {
		h.exportLink(c, r, fileName, data)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) exportLink(c *gin.Context, r model.Recipe, fileName string, data []byte) {
	if h.publisher == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link delivery is not configured"})
		return
	}
	url, err := h.publisher.Publish(c.Request.Context(), middleware.ScopeID(c), fileName, data)
	if err != nil {
		h.log.Error("failed to publish export", zap.String("recipe_id", r.ID), zap.Error(err))
		h.respondError(c, fmt.Errorf("%w: %v", service.ErrExport, err))
		return
	}
	c.JSON(http.StatusOK, ExportLinkResponse{URL: url, FileName: fileName})
}

func (h *Handler) ShareRecipe(c *gin.Context) {
	r, ok := h.controller(c).Recipes().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, export.RecipeShare(r))
}
