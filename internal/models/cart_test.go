package models

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

// An explicit zero is the natural removal value and must survive binding;
// only a missing quantity field is rejected.
func TestCartItemUpdateRequestBindsZeroQuantity(t *testing.T) {
	var req CartItemUpdateRequest
	if err := binding.JSON.BindBody([]byte(`{"quantity": 0}`), &req); err != nil {
		t.Fatalf("Expected zero quantity to bind, got %v", err)
	}
	if req.Quantity == nil || *req.Quantity != 0 {
		t.Errorf("Expected bound quantity 0, got %v", req.Quantity)
	}
}

func TestCartItemUpdateRequestBindsNegativeQuantity(t *testing.T) {
	var req CartItemUpdateRequest
	if err := binding.JSON.BindBody([]byte(`{"quantity": -1}`), &req); err != nil {
		t.Fatalf("Expected negative quantity to bind, got %v", err)
	}
	if req.Quantity == nil || *req.Quantity != -1 {
		t.Errorf("Expected bound quantity -1, got %v", req.Quantity)
	}
}

func TestCartItemUpdateRequestRejectsMissingQuantity(t *testing.T) {
	var req CartItemUpdateRequest
	if err := binding.JSON.BindBody([]byte(`{}`), &req); err == nil {
		t.Error("Expected missing quantity to fail binding")
	}
}
