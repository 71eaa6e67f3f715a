package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/database"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/notify"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/pricing"
)

// PublicHandler serves the storefront catalog and the price list.
type PublicHandler struct {
	productQueries *database.ProductQueries
	priceTable     *pricing.Table
	points         notify.PointDirectory
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(db *sql.DB, priceTable *pricing.Table, points notify.PointDirectory) *PublicHandler {
	return &PublicHandler{
		productQueries: database.NewProductQueries(db),
		priceTable:     priceTable,
		points:         points,
	}
}

// GetProducts returns the active catalog page
func (h *PublicHandler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	products, total, err := h.productQueries.ListProducts(page, limit, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

// GetProduct returns a single active product by numeric id or slug
func (h *PublicHandler) GetProduct(c *gin.Context) {
	idOrSlug := c.Param("id")

	var product *models.Product
	var err error
	if id, convErr := strconv.Atoi(idOrSlug); convErr == nil {
		product, err = h.productQueries.GetProductByID(id)
		if err == nil && !product.Active {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
	} else {
		product, err = h.productQueries.GetProductBySlug(idOrSlug)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetCheckoutOptions returns the shipping and payment price list
func (h *PublicHandler) GetCheckoutOptions(c *gin.Context) {
	response := models.CheckoutOptionsResponse{}
	for _, method := range []models.ShippingMethod{
		models.ShippingZasilkovna, models.ShippingPosta, models.ShippingPostaDopis, models.ShippingOsobne,
	} {
		fee, err := h.priceTable.ShippingCost(method)
		if err != nil {
			continue
		}
		response.Shipping = append(response.Shipping, models.ShippingOption{Method: string(method), Fee: fee})
	}
	for _, method := range []models.PaymentMethod{
		models.PaymentPrevodem, models.PaymentDobirka, models.PaymentHotove,
	} {
		fee, err := h.priceTable.PaymentCost(method)
		if err != nil {
			continue
		}
		response.Payment = append(response.Payment, models.ShippingOption{Method: string(method), Fee: fee})
	}
	c.JSON(http.StatusOK, response)
}

// GetPickupPoint resolves a Zásilkovna pickup point by its widget id
func (h *PublicHandler) GetPickupPoint(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing pickup point id"})
		return
	}

	point, err := h.points.Point(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup point not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, point)
}
