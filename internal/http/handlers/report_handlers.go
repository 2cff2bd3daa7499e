package handlers

import (
	"log"
	"net/http"
	"time"
)

// GetLowStockHandler godoc
// @Summary Low-stock and out-of-stock report
// @Description Partitions components into low stock (most critical first) and out of stock
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} LowStockResult
// @Failure 500 {string} string "Internal error"
// @Router /reports/low-stock [get]
func GetLowStockHandler(w http.ResponseWriter, r *http.Request) {
	low, out, err := componentRepo.LowStock()
	if err != nil {
		log.Printf("could not fetch low stock report: %v", err)
		http.Error(w, "could not fetch low stock report", http.StatusInternalServerError)
		return
	}

	resp := LowStockResult{
		LowStock:   toComponentResponses(low),
		OutOfStock: toComponentResponses(out),
		Summary: LowStockSummary{
			LowStockCount:   len(low),
			OutOfStockCount: len(out),
			TotalCritical:   len(low) + len(out),
		},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// GetOldStockHandler godoc
// @Summary Old-stock report
// @Description Components with stock not outwarded within the staleness window; never-used first
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OldStockResult
// @Failure 500 {string} string "Internal error"
// @Router /reports/old-stock [get]
func GetOldStockHandler(w http.ResponseWriter, r *http.Request) {
	staleSince := time.Now().UTC().AddDate(0, -oldStockMonths, 0)

	stale, err := componentRepo.OldStock(staleSince)
	if err != nil {
		log.Printf("could not fetch old stock report: %v", err)
		http.Error(w, "could not fetch old stock report", http.StatusInternalServerError)
		return
	}

	var totalValue float64
	for _, c := range stale {
		totalValue += c.UnitPrice * float64(c.Quantity)
	}

	resp := OldStockResult{
		OldStock: toComponentResponses(stale),
		Summary: OldStockSummary{
			Count:      len(stale),
			TotalValue: totalValue,
			StaleSince: staleSince,
		},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}
