package api

import (
	"time"

	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/service"
)

type SessionResponse struct {
	Token     string    `json:"token"`
	ScopeID   string    `json:"scope_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type NavigateRequest struct {
	View string `json:"view" binding:"required"`
}

type IngredientsRequest struct {
	Ingredients string `json:"ingredients"`
}

type DictationRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

type GenerateRequest struct {
	Ingredients string               `json:"ingredients"`
	Filters     []model.FilterOption `json:"filters"`
}

// RecipeResponse is a saved recipe with its embeddable video player URL.
type RecipeResponse struct {
	model.Recipe
	EmbedURL string `json:"embed_url,omitempty"`
}

type RecipeListResponse struct {
	Recipes   []model.Recipe     `json:"recipes"`
	Total     int                `json:"total"`
	Creations []service.Creation `json:"creations"`
}

type ExportLinkResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type ChatMessageRequest struct {
	Message string `json:"message"`
}

type AddItemsRequest struct {
	Names []string `json:"names" binding:"required"`
}

type AddItemsResponse struct {
	Added  int                      `json:"added"`
	Notice string                   `json:"notice"`
	Items  []model.ShoppingListItem `json:"items"`
}

type QuantityRequest struct {
	Quantity string `json:"quantity"`
}

type ShoppingListResponse struct {
	Items          []model.ShoppingListItem `json:"items"`
	PendingCount   int                      `json:"pending_count"`
	CompletedCount int                      `json:"completed_count"`
	AllChecked     bool                     `json:"all_checked"`
}

type RetailerLinkResponse struct {
	Retailer string `json:"retailer"`
	URL      string `json:"url"`
}
