package checkout

import (
	"testing"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/pricing"
)

func testContact() models.CustomerContact {
	return models.CustomerContact{
		FirstName: "Jana",
		LastName:  "Nováková",
		Email:     "jana.novakova@example.com",
		Street:    "Dlouhá 12",
		City:      "Praha",
		Zip:       "11000",
	}
}

// 9 A5 magnets at 22.78 priced via the 9-unit bundle tier
// (205), Zásilkovna shipping (65), cash on delivery (30) -> total 300.
func TestAssembleBundleScenario(t *testing.T) {
	items := []models.CartItem{
		{
			ID:          "item-1",
			ProductID:   1,
			ProductName: "Magnetky A5",
			Category:    models.CategoryMagnetsA5,
			Quantity:    9,
			UnitPrice:   22.78,
		},
	}
	point := &models.PickupPoint{ID: "1234", Name: "Z-Box Anděl", City: "Praha"}

	order, err := Assemble("20240115001", items, testContact(),
		models.ShippingZasilkovna, models.PaymentDobirka, point, pricing.Default())
	if err != nil {
		t.Fatalf("Failed to assemble order: %v", err)
	}

	if order.Subtotal != 205 {
		t.Errorf("Expected bundle subtotal 205, got %v", order.Subtotal)
	}
	if order.ShippingCost != 65 {
		t.Errorf("Expected shipping cost 65, got %v", order.ShippingCost)
	}
	if order.PaymentCost != 30 {
		t.Errorf("Expected payment cost 30, got %v", order.PaymentCost)
	}
	if order.Total != 300 {
		t.Errorf("Expected total 300, got %v", order.Total)
	}
	if order.PickupPoint == nil || order.PickupPoint.ID != "1234" {
		t.Errorf("Expected pickup point to be kept, got %+v", order.PickupPoint)
	}
	if order.Number != "20240115001" {
		t.Errorf("Expected order number to be carried over, got %s", order.Number)
	}
}

func TestAssembleTotalInvariant(t *testing.T) {
	items := []models.CartItem{
		{ID: "a", ProductID: 1, Category: models.CategoryMagnetsA5, Quantity: 3, UnitPrice: 25},
		{ID: "b", ProductID: 2, Category: models.CategoryPhotoCanvas, Quantity: 2, UnitPrice: 450},
	}

	order, err := Assemble("20240115002", items, testContact(),
		models.ShippingPosta, models.PaymentPrevodem, nil, pricing.Default())
	if err != nil {
		t.Fatalf("Failed to assemble order: %v", err)
	}

	var lineSum float64
	for _, item := range order.Items {
		lineSum += item.LineTotal
	}
	if order.Subtotal != lineSum {
		t.Errorf("Subtotal %v does not equal sum of line totals %v", order.Subtotal, lineSum)
	}
	if order.Total != order.Subtotal+order.ShippingCost+order.PaymentCost {
		t.Errorf("Total %v violates subtotal+shipping+payment", order.Total)
	}
}

func TestAssembleEmptyCart(t *testing.T) {
	_, err := Assemble("20240115003", nil, testContact(),
		models.ShippingPosta, models.PaymentPrevodem, nil, pricing.Default())
	if err == nil {
		t.Fatal("Expected error for empty cart")
	}
}

func TestAssembleUnknownMethods(t *testing.T) {
	items := []models.CartItem{
		{ID: "a", ProductID: 1, Category: models.CategoryMagnetsA5, Quantity: 1, UnitPrice: 25},
	}

	if _, err := Assemble("1", items, testContact(), "kuryr", models.PaymentPrevodem, nil, pricing.Default()); err == nil {
		t.Error("Expected error for unknown shipping method")
	}
	if _, err := Assemble("1", items, testContact(), models.ShippingPosta, "karta", nil, pricing.Default()); err == nil {
		t.Error("Expected error for unknown payment method")
	}
}

func TestAssembleDropsPointForNonLockerShipping(t *testing.T) {
	items := []models.CartItem{
		{ID: "a", ProductID: 1, Category: models.CategoryMagnetsA5, Quantity: 1, UnitPrice: 25},
	}
	point := &models.PickupPoint{ID: "1234", Name: "Z-Box Anděl"}

	order, err := Assemble("1", items, testContact(),
		models.ShippingOsobne, models.PaymentHotove, point, pricing.Default())
	if err != nil {
		t.Fatalf("Failed to assemble order: %v", err)
	}
	if order.PickupPoint != nil {
		t.Errorf("Expected pickup point dropped for in-person pickup, got %+v", order.PickupPoint)
	}
}

func TestAssembleSnapshotsItems(t *testing.T) {
	orientation := "landscape"
	items := []models.CartItem{
		{
			ID:           "a",
			ProductID:    1,
			ProductName:  "Magnetky A5",
			Category:     models.CategoryMagnetsA5,
			Quantity:     2,
			UnitPrice:    25,
			Photos:       []models.PhotoRef{{URL: "https://files.example.com/p1.jpg", Name: "p1.jpg"}},
			CustomFields: map[string]string{"Věnování": "Pro babičku"},
			Orientation:  &orientation,
		},
	}

	order, err := Assemble("1", items, testContact(),
		models.ShippingPosta, models.PaymentPrevodem, nil, pricing.Default())
	if err != nil {
		t.Fatalf("Failed to assemble order: %v", err)
	}

	item := order.Items[0]
	if len(item.Photos) != 1 || item.Photos[0].URL != "https://files.example.com/p1.jpg" {
		t.Errorf("Expected photos snapshotted, got %+v", item.Photos)
	}
	if item.CustomFields["Věnování"] != "Pro babičku" {
		t.Errorf("Expected custom fields snapshotted, got %+v", item.CustomFields)
	}
	if item.Orientation == nil || *item.Orientation != "landscape" {
		t.Errorf("Expected orientation snapshotted, got %+v", item.Orientation)
	}
}
