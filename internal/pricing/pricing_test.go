package pricing

import (
	"testing"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

func TestLineTotalBundleTier(t *testing.T) {
	table := Default()

	// Exact tier match overrides linear pricing
	total := table.LineTotal(models.CategoryMagnetsA5, 22.78, 9, false)
	if total != 205 {
		t.Errorf("Expected bundle price 205 for quantity 9, got %v", total)
	}

	// Off-tier quantities price linearly
	tests := []struct {
		quantity int
		expected float64
	}{
		{8, 8 * 22.78},
		{10, 10 * 22.78},
		{1, 22.78},
	}
	for _, tt := range tests {
		total := table.LineTotal(models.CategoryMagnetsA5, 22.78, tt.quantity, false)
		if total != tt.expected {
			t.Errorf("Quantity %d: expected %v, got %v", tt.quantity, tt.expected, total)
		}
	}
}

func TestLineTotalUnknownCategory(t *testing.T) {
	table := Default()

	total := table.LineTotal("fotoobrazy", 450, 2, false)
	if total != 900 {
		t.Errorf("Expected linear price 900, got %v", total)
	}
}

func TestLineTotalDirectMailing(t *testing.T) {
	table := Default()

	// Postcards support the per-unit surcharge
	total := table.LineTotal(models.CategoryPostcards, 15, 5, true)
	if total != 5*15+5*100 {
		t.Errorf("Expected %v with direct mailing, got %v", 5*15+5*100, total)
	}

	// Opting in on an unsupported category changes nothing
	total = table.LineTotal(models.CategoryMagnetsA5, 22.78, 2, true)
	if total != 2*22.78 {
		t.Errorf("Expected %v without surcharge, got %v", 2*22.78, total)
	}
}

func TestSubtotal(t *testing.T) {
	table := Default()

	items := []models.CartItem{
		{Category: models.CategoryMagnetsA5, UnitPrice: 22.78, Quantity: 9},
		{Category: models.CategoryPhotoCanvas, UnitPrice: 450, Quantity: 1},
	}

	subtotal := table.Subtotal(items)
	if subtotal != 205+450 {
		t.Errorf("Expected subtotal %v, got %v", 205.0+450.0, subtotal)
	}
}

func TestSubtotalEmptyCart(t *testing.T) {
	table := Default()
	if subtotal := table.Subtotal(nil); subtotal != 0 {
		t.Errorf("Expected zero subtotal for empty cart, got %v", subtotal)
	}
}

func TestShippingAndPaymentCosts(t *testing.T) {
	table := Default()

	shipping, err := table.ShippingCost(models.ShippingZasilkovna)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if shipping != 65 {
		t.Errorf("Expected zasilkovna fee 65, got %v", shipping)
	}

	payment, err := table.PaymentCost(models.PaymentDobirka)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if payment != 30 {
		t.Errorf("Expected dobirka surcharge 30, got %v", payment)
	}

	if _, err := table.ShippingCost("kuryr"); err == nil {
		t.Error("Expected error for unknown shipping method")
	}
	if _, err := table.PaymentCost("karta"); err == nil {
		t.Error("Expected error for unknown payment method")
	}
}

func TestInPersonPickupIsFree(t *testing.T) {
	table := Default()

	shipping, err := table.ShippingCost(models.ShippingOsobne)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if shipping != 0 {
		t.Errorf("Expected free in-person pickup, got %v", shipping)
	}

	payment, err := table.PaymentCost(models.PaymentHotove)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if payment != 0 {
		t.Errorf("Expected no surcharge for cash in person, got %v", payment)
	}
}
