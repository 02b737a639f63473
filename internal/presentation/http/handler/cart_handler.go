package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/licorera-api/internal/application/service"
	"github.com/sangkips/licorera-api/internal/presentation/http/dto/request"
	"github.com/sangkips/licorera-api/internal/presentation/http/dto/response"
)

// CartHandler serves the receipt builder of the signed-in user
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the current cart
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved", response.NewCartResponse(cart))
}

// Clear discards the current cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", nil)
}

// SetCustomer records the customer name
func (h *CartHandler) SetCustomer(c *gin.Context) {
	var req request.SetCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.SetCustomer(c.Request.Context(), &service.SetCustomerInput{
		UserID:       GetUserID(c),
		CustomerName: req.CustomerName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated", response.NewCartResponse(cart))
}

// AddItem adds one unit of a product
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), &service.AddItemInput{
		UserID:    GetUserID(c),
		ProductID: req.ProductID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", response.NewCartResponse(cart))
}

// SetItemQuantity sets a line's quantity; zero removes it
func (h *CartHandler) SetItemQuantity(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	var req request.SetCartItemQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.SetItemQuantity(c.Request.Context(), &service.SetItemQuantityInput{
		UserID:    GetUserID(c),
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item updated", response.NewCartResponse(cart))
}

// RemoveItem drops a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), GetUserID(c), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", response.NewCartResponse(cart))
}

// Checkout generates the receipt for the current cart
func (h *CartHandler) Checkout(c *gin.Context) {
	receipt, err := h.cartService.Checkout(c.Request.Context(), GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Receipt generated successfully", receipt)
}
