package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/database"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/middleware"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/notify"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/pricing"
)

// CartHandler handles cart-related requests
type CartHandler struct {
	cartQueries    *database.CartQueries
	productQueries *database.ProductQueries
	priceTable     *pricing.Table
	analytics      notify.Analytics
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *sql.DB, priceTable *pricing.Table, analytics notify.Analytics) *CartHandler {
	return &CartHandler{
		cartQueries:    database.NewCartQueries(db),
		productQueries: database.NewProductQueries(db),
		priceTable:     priceTable,
		analytics:      analytics,
	}
}

// GetCart returns the current cart contents
func (h *CartHandler) GetCart(c *gin.Context) {
	cartSession, ok := h.cartSession(c)
	if !ok {
		return
	}

	items, err := h.cartQueries.GetCartItems(cartSession.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.cartResponse(items))
}

// AddToCart appends a configured line item to the cart. The handler is the
// validating caller: it resolves the price snapshot and checks the photo
// count before the store sees the item.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req models.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartSession, ok := h.cartSession(c)
	if !ok {
		return
	}

	product, err := h.productQueries.GetProductByID(req.ProductID)
	if err != nil || !product.Active {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var variant *models.ProductVariant
	var variantName *string
	if req.VariantID != nil {
		variant, err = h.productQueries.GetVariantByID(*req.VariantID)
		if err != nil || variant.ProductID != product.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant for this product"})
			return
		}
		variantName = &variant.Name
	}

	// Exact-count photo constraint; the upload widget enforces it client
	// side, this is the authoritative check.
	required := product.PhotoCount(variant)
	if len(req.Photos) != required {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "Wrong number of photos for this product",
			"required_photos": required,
			"provided_photos": len(req.Photos),
		})
		return
	}

	if req.DirectMailing && !h.priceTable.SupportsDirectMailing(product.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Direct mailing is not available for this product"})
		return
	}

	item := &models.CartItem{
		CartSessionID: cartSession.ID,
		ProductID:     product.ID,
		VariantID:     req.VariantID,
		ProductName:   product.Name,
		VariantName:   variantName,
		Category:      product.Category,
		Quantity:      req.Quantity,
		UnitPrice:     product.UnitPrice(variant),
		Photos:        req.Photos,
		PhotoGroupID:  req.PhotoGroupID,
		CustomFields:  req.CustomFields,
		Orientation:   req.Orientation,
		DirectMailing: req.DirectMailing,
	}
	if item.Photos == nil {
		item.Photos = []models.PhotoRef{}
	}

	if _, err := h.cartQueries.AddCartItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart", "details": err.Error()})
		return
	}

	h.analytics.Track(notify.EventAddToCart, map[string]interface{}{
		"item_id":   product.ID,
		"item_name": product.Name,
		"price":     item.UnitPrice,
		"quantity":  item.Quantity,
		"currency":  "CZK",
	})

	items, err := h.cartQueries.GetCartItems(cartSession.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart items", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h.cartResponse(items))
}

// UpdateCartItem replaces a line's quantity; zero or below removes it
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req models.CartItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartSession, ok := h.cartSession(c)
	if !ok {
		return
	}

	if err := h.cartQueries.UpdateCartItemQuantity(cartSession.ID, c.Param("id"), *req.Quantity); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	items, err := h.cartQueries.GetCartItems(cartSession.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart items", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(items))
}

// RemoveFromCart removes a line item; unknown ids are a no-op
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	cartSession, ok := h.cartSession(c)
	if !ok {
		return
	}

	if err := h.cartQueries.RemoveCartItem(cartSession.ID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item", "details": err.Error()})
		return
	}

	items, err := h.cartQueries.GetCartItems(cartSession.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart items", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(items))
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	cartSession, ok := h.cartSession(c)
	if !ok {
		return
	}

	if err := h.cartQueries.ClearCart(cartSession.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Items: []models.CartItemLine{}})
}

// GetCartCount returns the cart item count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	cartSession, ok := h.cartSession(c)
	if !ok {
		return
	}

	count, err := h.cartQueries.CountCartItems(cartSession.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cart items", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.CartCountResponse{Count: count})
}

func (h *CartHandler) cartSession(c *gin.Context) (*models.CartSession, bool) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return nil, false
	}

	cartSession, err := h.cartQueries.GetOrCreateCartSession(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart session", "details": err.Error()})
		return nil, false
	}
	return cartSession, true
}

func (h *CartHandler) cartResponse(items []models.CartItem) models.CartResponse {
	response := models.CartResponse{Items: []models.CartItemLine{}}
	for i := range items {
		line := models.CartItemLine{
			CartItem:  items[i],
			LineTotal: h.priceTable.ItemTotal(&items[i]),
		}
		response.Items = append(response.Items, line)
		response.TotalItems += items[i].Quantity
		response.Subtotal += line.LineTotal
	}
	return response
}
