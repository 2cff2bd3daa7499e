package models

import "time"

// Component represents a stocked electronic part.
type Component struct {
	ID                   int        `json:"id"`
	Name                 string     `json:"name"`
	Manufacturer         string     `json:"manufacturer,omitempty"`
	Supplier             string     `json:"supplier,omitempty"`
	PartNumber           string     `json:"part_number"`
	Description          string     `json:"description,omitempty"`
	Quantity             int        `json:"quantity"`
	LocationBin          string     `json:"location_bin,omitempty"`
	UnitPrice            float64    `json:"unit_price"`
	DatasheetLink        string     `json:"datasheet_link,omitempty"`
	CriticalLowThreshold int        `json:"critical_low_threshold"`
	CategoryID           int        `json:"category_id"`
	CategoryName         string     `json:"category_name,omitempty"`
	CreatedBy            int        `json:"created_by"`
	CreatorName          string     `json:"creator_name,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	LastOutwardDate      *time.Time `json:"last_outward_date,omitempty"`
}

// DefaultCriticalLowThreshold applies when a component is created without one.
const DefaultCriticalLowThreshold = 10

type StockStatus string

const (
	StatusInStock    StockStatus = "IN_STOCK"
	StatusLowStock   StockStatus = "LOW_STOCK"
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// Status derives the stock status from a quantity and a critical-low
// threshold. It is a pure function; nothing is persisted.
func Status(quantity, threshold int) StockStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// StockStatus returns the component's derived status.
func (c Component) StockStatus() StockStatus {
	return Status(c.Quantity, c.CriticalLowThreshold)
}
