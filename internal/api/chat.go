package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetChat(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller(c).Snapshot().Chat)
}

func (h *Handler) OpenChat(c *gin.Context) {
	ctrl := h.controller(c)
	if err := ctrl.OpenChat(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot().Chat)
}

func (h *Handler) CloseChat(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.CloseChat()
	c.JSON(http.StatusOK, ctrl.Snapshot().Chat)
}

// SendChatMessage waits for the chef's reply and returns the updated chat.
func (h *Handler) SendChatMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := h.controller(c)
	if err := ctrl.SendChat(c.Request.Context(), req.Message); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot().Chat)
}
