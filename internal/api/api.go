// Package api exposes the per-scope controller over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/internal/export"
	"github.com/homsent/homsent-chef/backend/internal/middleware"
	"github.com/homsent/homsent-chef/backend/internal/service"
)

// Handler serves the /api/v1 routes.
type Handler struct {
	workspaces *service.Workspaces
	scopes     *service.ScopeService
	publisher  *export.Publisher
	limiter    middleware.Limiter
	log        *zap.Logger
}

// NewHandler creates the API handler. publisher may be nil, which disables
// link delivery of exported recipes.
func NewHandler(workspaces *service.Workspaces, scopes *service.ScopeService, publisher *export.Publisher, limiter middleware.Limiter, log *zap.Logger) *Handler {
	return &Handler{
		workspaces: workspaces,
		scopes:     scopes,
		publisher:  publisher,
		limiter:    limiter,
		log:        log.Named("api"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/session", h.CreateSession)

	scoped := router.Group("")
	scoped.Use(middleware.ScopeMiddleware(h.scopes))
	limited := middleware.RateLimitMiddleware(h.limiter, h.log)

	{
		scoped.GET("/state", h.GetState)
		scoped.POST("/navigate", h.Navigate)
		scoped.POST("/reset", h.Reset)
		scoped.PUT("/ingredients", h.SetIngredients)
		scoped.POST("/ingredients/dictation", h.AppendDictation)
		scoped.GET("/filters", h.ListFilters)
		scoped.DELETE("/notice", h.DismissNotice)
	}

	camera := scoped.Group("/camera")
	{
		camera.POST("/open", h.OpenCamera)
		camera.POST("/cancel", h.CancelCamera)
		camera.POST("/capture", limited, h.Capture)
	}

	recipes := scoped.Group("/recipes")
	{
		recipes.POST("/generate", limited, h.GenerateRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/favorite", h.ToggleFavorite)
		recipes.GET("/:id/export", h.ExportRecipe)
		recipes.GET("/:id/share", h.ShareRecipe)
	}

	search := scoped.Group("/search")
	{
		search.POST("", limited, h.Search)
		search.GET("", h.GetSearch)
		search.POST("/:id/favorite", h.ToggleGlobalFavorite)
		search.GET("/:id", h.GetSearchResult)
		search.GET("/:id/export", h.ExportSearchResult)
		search.GET("/:id/share", h.ShareSearchResult)
	}

	chat := scoped.Group("/chat")
	{
		chat.GET("", h.GetChat)
		chat.POST("/open", h.OpenChat)
		chat.POST("/close", h.CloseChat)
		chat.POST("/messages", limited, h.SendChatMessage)
	}

	shopping := scoped.Group("/shopping-list")
	{
		shopping.GET("", h.GetShoppingList)
		shopping.DELETE("", h.ClearShoppingList)
		shopping.POST("/items", h.AddShoppingItems)
		shopping.POST("/items/:id/toggle", h.ToggleShoppingItem)
		shopping.PUT("/items/:id/quantity", h.SetShoppingQuantity)
		shopping.DELETE("/completed", h.ClearCompleted)
		shopping.POST("/toggle-all", h.ToggleAllShoppingItems)
		shopping.GET("/share", h.ShareShoppingList)
		shopping.GET("/retailers", h.ListRetailers)
		shopping.GET("/retailers/:name", h.RetailerLink)
	}
}

// controller returns the controller of the authenticated scope.
func (h *Handler) controller(c *gin.Context) *service.Controller {
	return h.workspaces.Get(c.Request.Context(), middleware.ScopeID(c))
}

// respondError maps service errors to HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUnknownRetailer):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidView),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrNothingPending):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrChatUnavailable), errors.Is(err, service.ErrChatBusy):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
