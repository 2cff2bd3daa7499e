package repo

import (
	"time"

	"github.com/labforge/labstock/internal/models"
)

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	ComponentID *int
	Since       *time.Time
	Until       *time.Time
	Offset      *int
	Limit       *int
}

// TransactionRepository is the stock ledger. Record appends a transaction
// row and applies the quantity delta to the component as one atomic unit:
// either both writes are visible to subsequent reads or neither is.
// Concurrent OUTWARD calls against the same component must never drive its
// quantity negative.
type TransactionRepository interface {
	// Record validates stock availability, inserts the transaction, and
	// adjusts the component quantity. For OUTWARD it also stamps the
	// component's last outward date. Returns the created transaction with
	// denormalized names and the component as left after the movement.
	Record(t models.Transaction) (models.Transaction, models.Component, error)

	List(tf TransactionFilter) ([]models.Transaction, int, error)
}
