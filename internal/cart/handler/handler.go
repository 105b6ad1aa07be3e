package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/notify"
	"github.com/fekuna/omnipos-storefront-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	c := rg.Group("/cart")
	c.GET("", h.GetCart)
	c.POST("/items", h.AddItem)
	c.PUT("/items/:id", h.UpdateQuantity)
	c.POST("/items/:id/increment", h.Increment)
	c.POST("/items/:id/decrement", h.Decrement)
	c.DELETE("/items/:id", h.RemoveItem)
	c.DELETE("", h.Clear)
	c.PUT("/notes", h.SetNotes)
	c.POST("/checkout", h.Checkout)

	rg.GET("/checkout/:token", h.GetCheckout)
}

func cartKey(c *gin.Context) (string, bool) {
	id, ok := auth.FromContext(c.Request.Context())
	if !ok || (id.UserID == "" && id.GuestID == "") {
		return "", false
	}
	return id.CartKey(), true
}

// statusFor maps a cart failure to the HTTP status sent alongside its toast.
func statusFor(err error) int {
	switch {
	case errors.Is(err, cart.ErrOutOfStock), errors.Is(err, cart.ErrStockLimit):
		return http.StatusConflict
	case errors.Is(err, cart.ErrItemNotFound), errors.Is(err, inventory.ErrNotFound), errors.Is(err, cart.ErrHandoffNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrNothingSelected), errors.Is(err, cart.ErrInvalidItem):
		return http.StatusBadRequest
	case errors.Is(err, inventory.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respond renders the cart with a toast. On failure the cart is still sent so
// the client can repaint its committed state.
func (h *CartHandler) respond(c *gin.Context, s *cart.Store, message string, toast *notify.Toast, err error) {
	var view any
	if s != nil {
		view = dto.NewCartView(s)
	}
	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("cart operation failed",
				zap.String("route", c.FullPath()),
				zap.Error(err),
			)
		}
		toast = notify.FromError(err)
		res := response.Error(c, toast.Message).WithToast(toast)
		res.Data = view
		c.JSON(statusFor(err), res)
		return
	}
	c.JSON(http.StatusOK, response.Success(c, message, view).WithToast(toast))
}

func (h *CartHandler) GetCart(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}
	s, err := h.uc.GetCart(c.Request.Context(), key)
	h.respond(c, s, "Cart retrieved successfully", nil, err)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(c, "Invalid item payload"))
		return
	}
	input, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(c, "Invalid item payload"))
		return
	}

	s, rec, err := h.uc.AddItem(c.Request.Context(), key, input)
	toast := notify.Success(notify.MsgItemAdded)
	if rec.Clamped {
		toast = notify.Clamped(rec.Item.Quantity)
	}
	h.respond(c, s, "Item added", toast, err)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}

	var req dto.UpdateQuantityRequest
	// A malformed body is a quantity of 1, like any other unusable input.
	_ = c.ShouldBindJSON(&req)

	s, rec, err := h.uc.UpdateQuantity(c.Request.Context(), key, c.Param("id"), dto.ParseQuantity(req.Quantity))
	h.respond(c, s, "Quantity updated", clampToast(rec), err)
}

func (h *CartHandler) Increment(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}
	s, rec, err := h.uc.Increment(c.Request.Context(), key, c.Param("id"))
	h.respond(c, s, "Quantity updated", clampToast(rec), err)
}

func (h *CartHandler) Decrement(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}
	s, rec, err := h.uc.Decrement(c.Request.Context(), key, c.Param("id"))
	h.respond(c, s, "Quantity updated", clampToast(rec), err)
}

func clampToast(rec cart.Reconciliation) *notify.Toast {
	if rec.Clamped {
		return notify.Clamped(rec.Item.Quantity)
	}
	return nil
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}
	s, err := h.uc.RemoveItem(c.Request.Context(), key, c.Param("id"))
	h.respond(c, s, "Item removed", notify.Info(notify.MsgItemRemoved), err)
}

func (h *CartHandler) Clear(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}
	s, err := h.uc.Clear(c.Request.Context(), key)
	h.respond(c, s, "Cart cleared", notify.Info(notify.MsgCartCleared), err)
}

func (h *CartHandler) SetNotes(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}

	var req dto.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(c, "Invalid notes payload"))
		return
	}
	s, err := h.uc.SetNotes(c.Request.Context(), key, req.Notes)
	h.respond(c, s, "Notes updated", notify.Success(notify.MsgNotesUpdated), err)
}

func (h *CartHandler) Checkout(c *gin.Context) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(c, "Missing session"))
		return
	}

	var req dto.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(c, "Invalid checkout payload"))
			return
		}
	}

	token, items, err := h.uc.Checkout(c.Request.Context(), key, req.Selected())
	if err != nil {
		toast := notify.FromError(err)
		if statusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("checkout failed", zap.Error(err))
		}
		c.JSON(statusFor(err), response.Error(c, toast.Message).WithToast(toast))
		return
	}
	c.JSON(http.StatusOK, response.Success(c, "Checkout ready", dto.CheckoutResponse{
		Token: token,
		Items: dto.NewCartItemViews(items),
	}).WithToast(notify.Info(notify.MsgCheckoutReady)))
}

// GetCheckout serves the lines handed off to the checkout view.
func (h *CartHandler) GetCheckout(c *gin.Context) {
	items, err := h.uc.GetCheckout(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, cart.ErrHandoffNotFound) {
			c.JSON(http.StatusNotFound, response.Error(c, "Checkout session not found or expired"))
			return
		}
		h.logger.Error("failed to load checkout handoff", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error(c, "Failed to load checkout"))
		return
	}
	c.JSON(http.StatusOK, response.Success(c, "Checkout items retrieved", dto.NewCartItemViews(items)))
}
