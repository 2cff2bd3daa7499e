package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labforge/labstock/internal/http/handlers"
	"github.com/labforge/labstock/internal/http/router"
	"github.com/labforge/labstock/internal/models"
)

func TestCreateCategoryHandler(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	payload := handlers.CategoryRequest{Name: "Resistors", Description: "Fixed resistors"}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/categories", adminToken, payload))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Category
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if created.Name != "Resistors" || created.ID == 0 {
		t.Errorf("unexpected category: %+v", created)
	}

	// Duplicate name.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/categories", adminToken, payload))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate name, got %d", w.Code)
	}

	// Missing name.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/categories", adminToken, handlers.CategoryRequest{Name: "  "}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank name, got %d", w.Code)
	}
}

func TestGetCategoriesHandler_SortedByName(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	seedCategory(t, "Resistors")
	seedCategory(t, "Capacitors")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodGet, "/categories", adminToken, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var categories []models.Category
	if err := json.NewDecoder(w.Body).Decode(&categories); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(categories) != 2 || categories[0].Name != "Capacitors" || categories[1].Name != "Resistors" {
		t.Errorf("expected alphabetical order, got %+v", categories)
	}
}

func TestUpdateCategoryHandler(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	category := seedCategory(t, "Resistors")
	seedCategory(t, "Capacitors")

	payload := handlers.CategoryRequest{Name: "Passive components"}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPut, "/categories/"+itoa(category.ID), adminToken, payload))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Renaming onto an existing name conflicts.
	payload = handlers.CategoryRequest{Name: "Capacitors"}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPut, "/categories/"+itoa(category.ID), adminToken, payload))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPut, "/categories/999", adminToken, handlers.CategoryRequest{Name: "Ghost"}))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDeleteCategoryHandler(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	empty := seedCategory(t, "Obsolete")
	used := seedCategory(t, "Resistors")
	seedComponent(t, models.Component{Name: "10k resistor", PartNumber: "RES-10K", Quantity: 5, CategoryID: used.ID})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodDelete, "/categories/"+itoa(empty.ID), adminToken, nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 deleting empty category, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodDelete, "/categories/"+itoa(used.ID), adminToken, nil))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 deleting referenced category, got %d", w.Code)
	}
}

func TestCategoryWritesRequireManageInventory(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	payload := handlers.CategoryRequest{Name: "Resistors"}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/categories", researcherToken, payload))
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for researcher creating a category, got %d", w.Code)
	}
}
