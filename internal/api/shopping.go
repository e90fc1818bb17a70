package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homsent/homsent-chef/backend/internal/export"
	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/service"
)

func shoppingListResponse(items []model.ShoppingListItem) ShoppingListResponse {
	completed := 0
	for _, it := range items {
		if it.Checked {
			completed++
		}
	}
	return ShoppingListResponse{
		Items:          items,
		PendingCount:   len(items) - completed,
		CompletedCount: completed,
		AllChecked:     len(items) > 0 && completed == len(items),
	}
}

func (h *Handler) GetShoppingList(c *gin.Context) {
	c.JSON(http.StatusOK, shoppingListResponse(h.controller(c).ShoppingList().Items()))
}

func (h *Handler) AddShoppingItems(c *gin.Context) {
	var req AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := h.controller(c)
	added := ctrl.AddToShoppingList(c.Request.Context(), req.Names)
	c.JSON(http.StatusOK, AddItemsResponse{
		Added:  added,
		Notice: service.AddedMessage(added),
		Items:  ctrl.ShoppingList().Items(),
	})
}

func (h *Handler) ToggleShoppingItem(c *gin.Context) {
	list := h.controller(c).ShoppingList()
	if _, ok := list.Toggle(c.Request.Context(), c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, shoppingListResponse(list.Items()))
}

func (h *Handler) SetShoppingQuantity(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list := h.controller(c).ShoppingList()
	if _, ok := list.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, shoppingListResponse(list.Items()))
}

func (h *Handler) ClearCompleted(c *gin.Context) {
	list := h.controller(c).ShoppingList()
	list.ClearCompleted(c.Request.Context())
	c.JSON(http.StatusOK, shoppingListResponse(list.Items()))
}

func (h *Handler) ClearShoppingList(c *gin.Context) {
	list := h.controller(c).ShoppingList()
	list.ClearAll(c.Request.Context())
	c.JSON(http.StatusOK, shoppingListResponse(list.Items()))
}

func (h *Handler) ToggleAllShoppingItems(c *gin.Context) {
	list := h.controller(c).ShoppingList()
	list.ToggleAll(c.Request.Context())
	c.JSON(http.StatusOK, shoppingListResponse(list.Items()))
}

func (h *Handler) ShareShoppingList(c *gin.Context) {
	share, err := export.ShoppingShare(h.controller(c).ShoppingList().Items())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, share)
}

func (h *Handler) ListRetailers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"retailers": export.Retailers()})
}

func (h *Handler) RetailerLink(c *gin.Context) {
	name := c.Param("name")
	url, err := export.RetailerLink(name, h.controller(c).ShoppingList().Items())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RetailerLinkResponse{Retailer: name, URL: url})
}
