package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labforge/labstock/internal/http/handlers"
	"github.com/labforge/labstock/internal/http/router"
	"github.com/labforge/labstock/internal/models"
)

func TestRecordTransactionHandler_StockCycle(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	category := seedCategory(t, "Resistors")
	component := seedComponent(t, models.Component{
		Name:                 "10k resistor",
		PartNumber:           "RES-10K-0603",
		Quantity:             10,
		CriticalLowThreshold: 5,
		CategoryID:           category.ID,
	})

	steps := []struct {
		name           string
		movementType   models.TransactionType
		quantity       int
		expectCode     int
		expectQuantity int
		expectStatus   models.StockStatus
	}{
		{"outward within stock", models.Outward, 4, http.StatusCreated, 6, models.StatusInStock},
		{"outward crossing threshold", models.Outward, 3, http.StatusCreated, 3, models.StatusLowStock},
		{"outward exceeding stock", models.Outward, 5, http.StatusBadRequest, 3, models.StatusLowStock},
		{"inward restock", models.Inward, 12, http.StatusCreated, 15, models.StatusInStock},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			payload := handlers.TransactionRequest{
				ComponentID: component.ID,
				Type:        step.movementType,
				Quantity:    step.quantity,
				Reason:      "test movement",
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, authRequest(http.MethodPost, "/transactions", adminToken, payload))

			if w.Code != step.expectCode {
				t.Fatalf("expected %d, got %d: %s", step.expectCode, w.Code, w.Body.String())
			}

			stored, err := componentRepo.GetByID(component.ID)
			if err != nil {
				t.Fatalf("error fetching component: %v", err)
			}
			if stored.Quantity != step.expectQuantity {
				t.Errorf("expected quantity %d, got %d", step.expectQuantity, stored.Quantity)
			}
			if stored.StockStatus() != step.expectStatus {
				t.Errorf("expected status %v, got %v", step.expectStatus, stored.StockStatus())
			}
		})
	}
}

func TestRecordTransactionHandler_InsufficientStockMessage(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	category := seedCategory(t, "Capacitors")
	component := seedComponent(t, models.Component{
		Name:                 "100nF capacitor",
		PartNumber:           "CAP-100N-0805",
		Quantity:             3,
		CriticalLowThreshold: 5,
		CategoryID:           category.ID,
	})

	payload := handlers.TransactionRequest{ComponentID: component.ID, Type: models.Outward, Quantity: 8}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/transactions", adminToken, payload))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Available: 3") || !strings.Contains(w.Body.String(), "Requested: 8") {
		t.Errorf("expected available/requested in error, got %q", w.Body.String())
	}
}

func TestRecordTransactionHandler_UnknownComponent(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	payload := handlers.TransactionRequest{ComponentID: 999, Type: models.Inward, Quantity: 1}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/transactions", adminToken, payload))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRecordTransactionHandler_Invalid(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	tests := []struct {
		name    string
		payload handlers.TransactionRequest
	}{
		{"missing component", handlers.TransactionRequest{Type: models.Inward, Quantity: 1}},
		{"unknown type", handlers.TransactionRequest{ComponentID: 1, Type: "TRANSFER", Quantity: 1}},
		{"zero quantity", handlers.TransactionRequest{ComponentID: 1, Type: models.Outward, Quantity: 0}},
		{"negative quantity", handlers.TransactionRequest{ComponentID: 1, Type: models.Inward, Quantity: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, authRequest(http.MethodPost, "/transactions", adminToken, tt.payload))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestRecordTransactionHandler_ActorFromToken(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	category := seedCategory(t, "Connectors")
	component := seedComponent(t, models.Component{
		Name:                 "USB-C receptacle",
		PartNumber:           "CONN-USBC-16P",
		Quantity:             20,
		CriticalLowThreshold: 5,
		CategoryID:           category.ID,
	})

	payload := handlers.TransactionRequest{ComponentID: component.ID, Type: models.Outward, Quantity: 2}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/transactions", adminToken, payload))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Transaction
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if created.UserID != adminUser.ID {
		t.Errorf("expected user ID %d from the token, got %d", adminUser.ID, created.UserID)
	}
	if created.ComponentName != component.Name || created.PartNumber != component.PartNumber {
		t.Errorf("expected denormalized component fields, got %+v", created)
	}
}

func TestGetTransactionsHandler_FilterAndPagination(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	category := seedCategory(t, "ICs")
	first := seedComponent(t, models.Component{
		Name: "ATmega328P", PartNumber: "IC-ATMEGA328P", Quantity: 50, CriticalLowThreshold: 5, CategoryID: category.ID,
	})
	second := seedComponent(t, models.Component{
		Name: "NE555", PartNumber: "IC-NE555", Quantity: 50, CriticalLowThreshold: 5, CategoryID: category.ID,
	})

	record := func(componentID, quantity int) {
		payload := handlers.TransactionRequest{ComponentID: componentID, Type: models.Outward, Quantity: quantity}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authRequest(http.MethodPost, "/transactions", adminToken, payload))
		if w.Code != http.StatusCreated {
			t.Fatalf("error recording movement: %d %s", w.Code, w.Body.String())
		}
	}
	record(first.ID, 1)
	record(first.ID, 2)
	record(second.ID, 3)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodGet, "/transactions?component="+itoa(first.ID), adminToken, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp handlers.TransactionsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Pagination.Total != 2 {
		t.Errorf("expected 2 movements for component, got %d", resp.Pagination.Total)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("expected 2 movements in page, got %d", len(resp.Transactions))
	}
	// Newest first.
	if resp.Transactions[0].Quantity != 2 || resp.Transactions[1].Quantity != 1 {
		t.Errorf("expected newest-first ordering, got %+v", resp.Transactions)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodGet, "/transactions?page=1&page_size=2", adminToken, nil))
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Pagination.Total != 3 || resp.Pagination.Pages != 2 || len(resp.Transactions) != 2 {
		t.Errorf("expected 3 total over 2 pages with 2 in page, got %+v", resp.Pagination)
	}
}

func TestGetTransactionsHandler_InvalidSince(t *testing.T) {
	r := router.NewRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodGet, "/transactions?since=yesterday", adminToken, nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed since, got %d", w.Code)
	}
}

func TestTransactionsRequireAuth(t *testing.T) {
	r := router.NewRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/transactions", "", handlers.TransactionRequest{}))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
}
