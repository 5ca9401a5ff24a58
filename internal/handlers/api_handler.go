package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"order_entry/internal/cart"
	"order_entry/internal/catalog"
	"order_entry/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIHandler struct {
	catalogService services.CatalogService
	orderService   services.OrderService
	logger         *zap.Logger
}

func NewAPIHandler(
	catalogService services.CatalogService,
	orderService services.OrderService,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		catalogService: catalogService,
		orderService:   orderService,
		logger:         logger,
	}
}

// RegisterRoutes mounts the order-entry API on router.
func (h *APIHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/clients", h.ListClients)
		api.GET("/shades/:brand", h.GetShades)

		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions/:session_id", h.GetSession)
		api.DELETE("/sessions/:session_id", h.DeleteSession)

		api.PUT("/sessions/:session_id/client", h.SelectClient)
		api.GET("/sessions/:session_id/articles", h.ListArticles)

		api.POST("/sessions/:session_id/cart", h.AddToCart)
		api.POST("/sessions/:session_id/cart/:code/:direction", h.AdjustQuantity)
		api.DELETE("/sessions/:session_id/cart/:code", h.RemoveLine)
		api.POST("/sessions/:session_id/shades/:code/toggle", h.ToggleShade)

		api.POST("/sessions/:session_id/delivery/next", h.NextDeliveryDate)
		api.POST("/sessions/:session_id/delivery/previous", h.PreviousDeliveryDate)

		api.POST("/sessions/:session_id/checkout", h.Checkout)
	}
}

// Reference data endpoints
func (h *APIHandler) ListClients(c *gin.Context) {
	clients := h.catalogService.Clients()
	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"count":   len(clients),
	})
}

func (h *APIHandler) GetShades(c *gin.Context) {
	brand := c.Param("brand")
	rows, err := h.catalogService.Shades(c.Request.Context(), brand)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"brand": brand,
		"rows":  rows,
	})
}

// Session management endpoints
func (h *APIHandler) CreateSession(c *gin.Context) {
	view, err := h.orderService.CreateSession(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *APIHandler) GetSession(c *gin.Context) {
	view, err := h.orderService.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := h.orderService.EndSession(c.Request.Context(), sessionID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"status":     "deleted",
	})
}

func (h *APIHandler) SelectClient(c *gin.Context) {
	var req struct {
		ClientCode string `json:"client_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "kind": "invalid_request"})
		return
	}

	view, err := h.orderService.SelectClient(c.Request.Context(), c.Param("session_id"), req.ClientCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) ListArticles(c *gin.Context) {
	view, err := h.orderService.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	articles := h.catalogService.PricedArticles(view.Client)
	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// Cart endpoints
func (h *APIHandler) AddToCart(c *gin.Context) {
	// quantity may be a number or a string; anything unreadable counts as 1
	var req struct {
		Code     string          `json:"code" binding:"required"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "kind": "invalid_request"})
		return
	}

	qty := cart.ParseQuantity(strings.Trim(string(req.Quantity), `"`))
	view, err := h.orderService.AddToCart(c.Request.Context(), c.Param("session_id"), req.Code, qty)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) AdjustQuantity(c *gin.Context) {
	dir, ok := cart.ParseDirection(c.Param("direction"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown direction", "kind": "invalid_request"})
		return
	}

	view, err := h.orderService.AdjustQuantity(c.Request.Context(), c.Param("session_id"), c.Param("code"), dir)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) RemoveLine(c *gin.Context) {
	view, err := h.orderService.RemoveLine(c.Request.Context(), c.Param("session_id"), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) ToggleShade(c *gin.Context) {
	var req struct {
		Quantity string `json:"quantity"`
	}
	// The body is optional; the default quantity is 1.
	_ = c.ShouldBindJSON(&req)

	view, inCart, err := h.orderService.ToggleShade(c.Request.Context(), c.Param("session_id"), c.Param("code"), req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": view,
		"in_cart": inCart,
	})
}

// Delivery date endpoints
func (h *APIHandler) NextDeliveryDate(c *gin.Context) {
	view, err := h.orderService.NextDeliveryDate(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) PreviousDeliveryDate(c *gin.Context) {
	view, err := h.orderService.PreviousDeliveryDate(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) Checkout(c *gin.Context) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	_ = c.ShouldBindJSON(&req)

	out, err := h.orderService.Checkout(c.Request.Context(), c.Param("session_id"), req.Confirm)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *APIHandler) respondError(c *gin.Context, err error) {
	var stockErr *cart.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     err.Error(),
			"kind":      "insufficient_stock",
			"code":      stockErr.Code,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "session_not_found"})
	case errors.Is(err, cart.ErrNoClientSelected):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "no_client_selected"})
	case errors.Is(err, cart.ErrUnknownArticle):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "unknown_article"})
	case errors.Is(err, services.ErrUnknownClient):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "unknown_client"})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "empty_cart"})
	case errors.Is(err, catalog.ErrInvalidBrand):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_request"})
	case errors.Is(err, catalog.ErrReferenceLoad):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "reference_unavailable"})
	case errors.Is(err, services.ErrDispatchFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "kind": "dispatch_failed"})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "kind": "internal"})
	}
}
