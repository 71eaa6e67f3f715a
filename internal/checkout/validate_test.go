package checkout

import (
	"testing"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

func validRequest() *models.CheckoutRequest {
	return &models.CheckoutRequest{
		FirstName:     "Jana",
		LastName:      "Nováková",
		Email:         "jana.novakova@example.com",
		Street:        "Dlouhá 12",
		City:          "Praha",
		Zip:           "11000",
		Shipping:      "posta",
		Payment:       "prevodem",
		TermsAccepted: true,
	}
}

func TestValidateComplete(t *testing.T) {
	violations := Validate(validRequest())
	if len(violations) != 0 {
		t.Errorf("Expected no violations, got %v", violations)
	}
}

func TestValidateEmptyFormReportsEveryField(t *testing.T) {
	violations := Validate(&models.CheckoutRequest{})

	expected := []string{
		"first_name", "last_name", "email", "street", "city", "zip",
		"shipping", "payment", "terms_accepted",
	}
	for _, field := range expected {
		if _, ok := violations[field]; !ok {
			t.Errorf("Expected violation for %q, got none", field)
		}
	}
	if len(violations) != len(expected) {
		t.Errorf("Expected %d violations, got %d: %v", len(expected), len(violations), violations)
	}
}

func TestValidateInvalidEmail(t *testing.T) {
	req := validRequest()
	req.Email = "not-an-email"

	violations := Validate(req)
	if _, ok := violations["email"]; !ok {
		t.Errorf("Expected email violation, got %v", violations)
	}
	if len(violations) != 1 {
		t.Errorf("Expected only the email violation, got %v", violations)
	}
}

func TestValidateZasilkovnaRequiresPickupPoint(t *testing.T) {
	req := validRequest()
	req.Shipping = "zasilkovna"

	violations := Validate(req)
	if _, ok := violations["pickup_point"]; !ok {
		t.Errorf("Expected pickup_point violation, got %v", violations)
	}

	// A selected point satisfies the requirement
	req.PickupPoint = &models.PickupPoint{ID: "1234", Name: "Z-Box Praha", City: "Praha"}
	violations = Validate(req)
	if len(violations) != 0 {
		t.Errorf("Expected no violations with a selected point, got %v", violations)
	}

	// A bare point ID is enough too; the handler resolves the descriptor
	req.PickupPoint = nil
	req.PickupPointID = "1234"
	violations = Validate(req)
	if len(violations) != 0 {
		t.Errorf("Expected no violations with a point ID, got %v", violations)
	}
}

func TestValidateOtherShippingNeedsNoPoint(t *testing.T) {
	req := validRequest()
	req.Shipping = "osobne"

	violations := Validate(req)
	if len(violations) != 0 {
		t.Errorf("Expected no violations, got %v", violations)
	}
}

func TestValidateUnacceptedTerms(t *testing.T) {
	req := validRequest()
	req.TermsAccepted = false

	violations := Validate(req)
	if _, ok := violations["terms_accepted"]; !ok {
		t.Errorf("Expected terms violation, got %v", violations)
	}
}

func TestValidateWhitespaceOnlyFields(t *testing.T) {
	req := validRequest()
	req.City = "   "

	violations := Validate(req)
	if _, ok := violations["city"]; !ok {
		t.Errorf("Expected city violation for whitespace value, got %v", violations)
	}
}
