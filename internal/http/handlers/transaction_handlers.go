package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labforge/labstock/internal/alerts"
	mw "github.com/labforge/labstock/internal/http/middleware"
	"github.com/labforge/labstock/internal/models"
	"github.com/labforge/labstock/internal/repo"
)

// RecordTransactionHandler godoc
// @Summary Record a stock movement
// @Description Appends an INWARD or OUTWARD transaction and atomically adjusts the component quantity
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transaction body TransactionRequest true "Movement to record"
// @Success 201 {object} models.Transaction
// @Failure 400 {string} string "Validation error or insufficient stock"
// @Failure 404 {string} string "Component not found"
// @Router /transactions [post]
func RecordTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateTransaction(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	// The acting user comes from the token, never from the body.
	actor, ok := mw.ActorFromContext(r)
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	transaction := models.Transaction{
		Type:        req.Type,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		Project:     req.Project,
		Remarks:     req.Remarks,
		ComponentID: req.ComponentID,
		UserID:      actor.ID,
	}

	created, component, err := transactionRepo.Record(transaction)
	if err != nil {
		var insufficient *repo.InsufficientStockError
		switch {
		case errors.Is(err, repo.ErrComponentNotFound):
			http.Error(w, "component not found", http.StatusNotFound)
		case errors.As(err, &insufficient):
			http.Error(w, fmt.Sprintf("insufficient stock. Available: %d, Requested: %d",
				insufficient.Available, insufficient.Requested), http.StatusBadRequest)
		default:
			log.Printf("could not record transaction: %v", err)
			http.Error(w, "could not record transaction", http.StatusInternalServerError)
		}
		return
	}

	alerts.NotifyStockLevel(component)

	if err := writeJSON(w, http.StatusCreated, created); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// GetTransactionsHandler godoc
// @Summary List stock movements
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param component query int false "Filter by component ID"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} TransactionsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Router /transactions [get]
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit, offset := pageParams(r)

	filter := repo.TransactionFilter{
		ComponentID: parseIntPtr(q.Get("component")),
		Offset:      &offset,
		Limit:       &limit,
	}

	if sinceStr := q.Get("since"); sinceStr != "" {
		ts, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			http.Error(w, "invalid since date format", http.StatusBadRequest)
			return
		}
		filter.Since = &ts
	}
	if untilStr := q.Get("until"); untilStr != "" {
		ts, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			http.Error(w, "invalid until date format", http.StatusBadRequest)
			return
		}
		filter.Until = &ts
	}

	transactions, total, err := transactionRepo.List(filter)
	if err != nil {
		log.Printf("could not retrieve transactions: %v", err)
		http.Error(w, "could not retrieve transactions", http.StatusInternalServerError)
		return
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	resp := TransactionsSearchResult{
		Transactions: transactions,
		Pagination:   Pagination{Page: page, Limit: limit, Total: total, Pages: pages(total, limit)},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}
