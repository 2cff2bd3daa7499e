package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/labforge/labstock/internal/http/middleware"
	"github.com/labforge/labstock/internal/models"
	"github.com/labforge/labstock/internal/repo"
)

// CreateComponentHandler godoc
// @Summary Create a new component
// @Description Adds a component to the lab inventory
// @Tags components
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param component body ComponentRequest true "Component to add"
// @Success 201 {object} ComponentResponse
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "Duplicate part number"
// @Router /components [post]
func CreateComponentHandler(w http.ResponseWriter, r *http.Request) {
	var req ComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateComponent(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	if _, err := categoryRepo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusBadRequest)
			return
		}
		http.Error(w, "could not validate category", http.StatusInternalServerError)
		return
	}

	actor, _ := mw.ActorFromContext(r)
	threshold := req.CriticalLowThreshold
	if threshold == 0 {
		threshold = models.DefaultCriticalLowThreshold
	}

	now := time.Now().UTC()
	component := models.Component{
		Name:                 req.Name,
		Manufacturer:         req.Manufacturer,
		Supplier:             req.Supplier,
		PartNumber:           req.PartNumber,
		Description:          req.Description,
		Quantity:             req.Quantity,
		LocationBin:          req.LocationBin,
		UnitPrice:            req.UnitPrice,
		DatasheetLink:        req.DatasheetLink,
		CriticalLowThreshold: threshold,
		CategoryID:           req.CategoryID,
		CreatedBy:            actor.ID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	created, err := componentRepo.Create(component)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatePartNumber) {
			http.Error(w, "part number already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not create component", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusCreated, toComponentResponse(created)); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// GetComponentByIDHandler godoc
// @Summary Get component by ID
// @Tags components
// @Produce json
// @Security BearerAuth
// @Param id path int true "Component ID"
// @Success 200 {object} ComponentResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /components/{id} [get]
func GetComponentByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid component ID", http.StatusBadRequest)
		return
	}

	component, err := componentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrComponentNotFound) {
			http.Error(w, "component not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch component", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, toComponentResponse(component)); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// FilterComponentsHandler godoc
// @Summary List components with filters and pagination
// @Tags components
// @Produce json
// @Security BearerAuth
// @Param category query int false "Filter by category ID"
// @Param search query string false "Free-text search over name, part number, description, manufacturer, supplier"
// @Param min_quantity query int false "Minimum quantity"
// @Param max_quantity query int false "Maximum quantity"
// @Param location query string false "Location bin substring"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} ComponentsSearchResult
// @Failure 500 {string} string "Internal error"
// @Router /components [get]
func FilterComponentsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit, offset := pageParams(r)

	filter := repo.ComponentFilter{
		CategoryID: parseIntPtr(q.Get("category")),
		Search:     q.Get("search"),
		MinQty:     parseIntPtr(q.Get("min_quantity")),
		MaxQty:     parseIntPtr(q.Get("max_quantity")),
		Location:   q.Get("location"),
		Offset:     &offset,
		Limit:      &limit,
	}

	components, total, err := componentRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not filter components", http.StatusInternalServerError)
		return
	}

	resp := ComponentsSearchResult{
		Components: toComponentResponses(components),
		Pagination: Pagination{Page: page, Limit: limit, Total: total, Pages: pages(total, limit)},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// UpdateComponentHandler godoc
// @Summary Update a component
// @Description Administrative override; stock movements go through transactions
// @Tags components
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Component ID"
// @Param component body ComponentRequest true "Updated component"
// @Success 200 {object} ComponentResponse
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicate part number"
// @Router /components/{id} [put]
func UpdateComponentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid component ID", http.StatusBadRequest)
		return
	}

	var req ComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateComponent(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	existing, err := componentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrComponentNotFound) {
			http.Error(w, "component not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch component", http.StatusInternalServerError)
		return
	}

	threshold := req.CriticalLowThreshold
	if threshold == 0 {
		threshold = models.DefaultCriticalLowThreshold
	}

	component := models.Component{
		ID:                   id,
		Name:                 req.Name,
		Manufacturer:         req.Manufacturer,
		Supplier:             req.Supplier,
		PartNumber:           req.PartNumber,
		Description:          req.Description,
		Quantity:             req.Quantity,
		LocationBin:          req.LocationBin,
		UnitPrice:            req.UnitPrice,
		DatasheetLink:        req.DatasheetLink,
		CriticalLowThreshold: threshold,
		CategoryID:           req.CategoryID,
		CreatedBy:            existing.CreatedBy,
		CreatedAt:            existing.CreatedAt,
		UpdatedAt:            time.Now().UTC(),
		LastOutwardDate:      existing.LastOutwardDate,
	}

	updated, err := componentRepo.Update(component)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrComponentNotFound):
			http.Error(w, "component not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrDuplicatePartNumber):
			http.Error(w, "part number already exists", http.StatusConflict)
		default:
			http.Error(w, "could not update component", http.StatusInternalServerError)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, toComponentResponse(updated)); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// DeleteComponentHandler godoc
// @Summary Delete a component
// @Description Refused while the ledger references the component
// @Tags components
// @Security BearerAuth
// @Param id path int true "Component ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Component has transactions"
// @Router /components/{id} [delete]
func DeleteComponentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid component ID", http.StatusBadRequest)
		return
	}

	if err := componentRepo.Delete(id); err != nil {
		switch {
		case errors.Is(err, repo.ErrComponentNotFound):
			http.Error(w, "component not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrComponentHasTransactions):
			http.Error(w, "component has recorded transactions", http.StatusConflict)
		default:
			http.Error(w, "could not delete component", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
