package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/internal/model"
	"github.com/homsent/homsent-chef/backend/internal/service"
)

const maxImageBytes = 10 << 20

// CreateSession issues a scope token. A request carrying a valid token gets a
// fresh token for the same scope; otherwise a new scope is created.
func (h *Handler) CreateSession(c *gin.Context) {
	if bearer, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		if claims, err := h.scopes.ValidateToken(bearer); err == nil {
			token, expiresAt, err := h.scopes.IssueFor(claims.ScopeID)
			if err != nil {
				h.respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, SessionResponse{Token: token, ScopeID: claims.ScopeID, ExpiresAt: expiresAt})
			return
		}
	}

	token, scopeID, expiresAt, err := h.scopes.Issue()
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.log.Info("scope created", zap.String("scope_id", scopeID))
	c.JSON(http.StatusCreated, SessionResponse{Token: token, ScopeID: scopeID, ExpiresAt: expiresAt})
}

func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller(c).Snapshot())
}

func (h *Handler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := service.ParseView(req.View)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctrl := h.controller(c)
	ctrl.Navigate(view)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) Reset(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.Reset()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) SetIngredients(c *gin.Context) {
	var req IngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := h.controller(c)
	ctrl.SetIngredients(req.Ingredients)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) AppendDictation(c *gin.Context) {
	var req DictationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := h.controller(c)
	ctrl.AppendDictation(req.Transcript)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) ListFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": model.DefaultFilterGroups()})
}

func (h *Handler) DismissNotice(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.DismissNotice()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) OpenCamera(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.OpenCamera()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) CancelCamera(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.CancelCamera()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// Capture takes a photo uploaded as the multipart field "image" and runs
// ingredient recognition on it.
func (h *Handler) Capture(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(image)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is not an image"})
		return
	}

	ctrl := h.controller(c)
	ctrl.Capture(c.Request.Context(), image, mimeType)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}
