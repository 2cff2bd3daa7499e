package models

import "time"

type TransactionType string

const (
	Inward  TransactionType = "INWARD"
	Outward TransactionType = "OUTWARD"
)

// Valid reports whether t is one of the two movement types.
func (t TransactionType) Valid() bool {
	return t == Inward || t == Outward
}

// Transaction is an immutable record of stock movement. Rows are only ever
// appended; the component quantity is kept consistent with the ledger sum by
// the transaction repository.
type Transaction struct {
	ID          int             `json:"id"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Reason      string          `json:"reason,omitempty"`
	Project     string          `json:"project,omitempty"`
	Remarks     string          `json:"remarks,omitempty"`
	ComponentID int             `json:"component_id"`
	UserID      int             `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`

	// Denormalized for display.
	ComponentName string `json:"component_name,omitempty"`
	PartNumber    string `json:"part_number,omitempty"`
	UserName      string `json:"user_name,omitempty"`
}
