package models_test

import (
	"testing"

	"github.com/labforge/labstock/internal/models"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		expected  models.StockStatus
	}{
		{"zero quantity is out of stock", 0, 10, models.StatusOutOfStock},
		{"zero quantity with zero threshold", 0, 0, models.StatusOutOfStock},
		{"below threshold is low stock", 3, 5, models.StatusLowStock},
		{"at threshold is low stock", 5, 5, models.StatusLowStock},
		{"above threshold is in stock", 6, 5, models.StatusInStock},
		{"one above zero threshold is in stock", 1, 0, models.StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.Status(tt.quantity, tt.threshold); got != tt.expected {
				t.Errorf("Status(%d, %d) = %v, want %v", tt.quantity, tt.threshold, got, tt.expected)
			}
		})
	}
}

func TestComponentStockStatus(t *testing.T) {
	c := models.Component{Quantity: 4, CriticalLowThreshold: 10}
	if got := c.StockStatus(); got != models.StatusLowStock {
		t.Errorf("expected LOW_STOCK, got %v", got)
	}
}

func TestTransactionTypeValid(t *testing.T) {
	if !models.Inward.Valid() || !models.Outward.Valid() {
		t.Error("expected INWARD and OUTWARD to be valid")
	}
	if models.TransactionType("TRANSFER").Valid() {
		t.Error("expected unknown type to be invalid")
	}
}

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     models.User
		expected string
	}{
		{"full name", models.User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first name only", models.User{Username: "jdoe", FirstName: "Jane"}, "Jane"},
		{"username fallback", models.User{Username: "jdoe"}, "jdoe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
