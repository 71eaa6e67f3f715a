package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/checkout"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/database"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/middleware"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/notify"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/pricing"
)

// CheckoutHandler turns a cart into a placed order
type CheckoutHandler struct {
	cartQueries    *database.CartQueries
	orderQueries   *database.OrderQueries
	productQueries *database.ProductQueries
	minter         *checkout.NumberMinter
	priceTable     *pricing.Table
	pipeline       *notify.Pipeline
	points         notify.PointDirectory
	analytics      notify.Analytics
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *sql.DB, minter *checkout.NumberMinter, priceTable *pricing.Table, pipeline *notify.Pipeline, points notify.PointDirectory, analytics notify.Analytics) *CheckoutHandler {
	return &CheckoutHandler{
		cartQueries:    database.NewCartQueries(db),
		orderQueries:   database.NewOrderQueries(db),
		productQueries: database.NewProductQueries(db),
		minter:         minter,
		priceTable:     priceTable,
		pipeline:       pipeline,
		points:         points,
		analytics:      analytics,
	}
}

// GetSummary returns the priced cart for the checkout page and records
// that checkout began.
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	_, items, ok := h.cartItems(c)
	if !ok {
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Košík je prázdný"})
		return
	}

	subtotal := h.priceTable.Subtotal(items)
	h.analytics.Track(notify.EventBeginCheckout, map[string]interface{}{
		"value":    subtotal,
		"currency": "CZK",
		"items":    len(items),
	})

	c.JSON(http.StatusOK, gin.H{
		"subtotal": subtotal,
		"items":    len(items),
	})
}

// PlaceOrder validates the checkout form, assembles the order and runs the
// notification pipeline. The cart survives any failure so the customer can
// retry without re-entering their configuration.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartSession, items, ok := h.cartItems(c)
	if !ok {
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Košík je prázdný"})
		return
	}

	// Catalog may have changed since the items were added; a stale photo
	// count means the configuration no longer matches the product.
	for i := range items {
		if !h.photoCountCurrent(&items[i]) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Položka v košíku už neodpovídá nabídce, upravte ji prosím",
				"item_id": items[i].ID,
			})
			return
		}
	}

	if fields := checkout.Validate(&req); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
			Error:  "Formulář obsahuje chyby",
			Fields: fields,
		})
		return
	}

	point := req.PickupPoint
	if models.ShippingMethod(req.Shipping) == models.ShippingZasilkovna && point == nil {
		resolved, err := h.points.Point(c.Request.Context(), req.PickupPointID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
				Error:  "Formulář obsahuje chyby",
				Fields: map[string]string{"pickup_point": "Vybrané výdejní místo se nepodařilo ověřit"},
			})
			return
		}
		point = resolved
	}

	contact := models.CustomerContact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Street:    req.Street,
		City:      req.City,
		Zip:       req.Zip,
		Note:      req.Note,
	}

	// Each attempt mints a fresh number, a failed attempt burns its slot.
	number := h.minter.Mint()

	order, err := checkout.Assemble(number, items, contact, models.ShippingMethod(req.Shipping), models.PaymentMethod(req.Payment), point, h.priceTable)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err = h.orderQueries.CreateOrder(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	invoiceURL, err := h.pipeline.Dispatch(c.Request.Context(), order)
	if err != nil {
		log.Printf("Order %s notification pipeline failed: %v", order.Number, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":        "Objednávku se nepodařilo dokončit, zkuste to prosím znovu",
			"order_number": order.Number,
		})
		return
	}

	if invoiceURL != "" {
		if err := h.orderQueries.SetInvoiceURL(order.ID, invoiceURL); err != nil {
			log.Printf("Failed to store invoice URL for order %s: %v", order.Number, err)
		} else {
			order.InvoiceURL = &invoiceURL
		}
	}

	if err := h.cartQueries.ClearCart(cartSession.ID); err != nil {
		log.Printf("Failed to clear cart after order %s: %v", order.Number, err)
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder returns a placed order by its number
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, err := h.orderQueries.GetOrderByNumber(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *CheckoutHandler) photoCountCurrent(item *models.CartItem) bool {
	product, err := h.productQueries.GetProductByID(item.ProductID)
	if err != nil || !product.Active {
		return false
	}

	var variant *models.ProductVariant
	if item.VariantID != nil {
		variant, err = h.productQueries.GetVariantByID(*item.VariantID)
		if err != nil || variant.ProductID != product.ID {
			return false
		}
	}

	return len(item.Photos) == product.PhotoCount(variant)
}

func (h *CheckoutHandler) cartItems(c *gin.Context) (*models.CartSession, []models.CartItem, bool) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session found"})
		return nil, nil, false
	}

	cartSession, err := h.cartQueries.GetOrCreateCartSession(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart session", "details": err.Error()})
		return nil, nil, false
	}

	items, err := h.cartQueries.GetCartItems(cartSession.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart items", "details": err.Error()})
		return nil, nil, false
	}
	return cartSession, items, true
}
