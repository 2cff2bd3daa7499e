package repo

import (
	"time"

	"github.com/labforge/labstock/internal/models"
)

// ComponentFilter narrows component listings. Pointer fields are skipped
// when nil.
type ComponentFilter struct {
	CategoryID *int
	Search     string
	MinQty     *int
	MaxQty     *int
	Location   string
	Offset     *int
	Limit      *int
}

// ComponentRepository defines the interface for component data operations.
// Quantity is mutated exclusively through the transaction repository; Update
// here is the administrative override.
type ComponentRepository interface {
	Create(c models.Component) (models.Component, error)
	GetByID(id int) (models.Component, error)
	GetByPartNumber(partNumber string) (models.Component, error)
	GetAll() ([]models.Component, error)
	Filter(cf ComponentFilter) ([]models.Component, int, error)
	Update(c models.Component) (models.Component, error)
	Delete(id int) error

	// LowStock partitions stocked components into low (0 < qty <= threshold,
	// ascending by quantity) and out-of-stock (qty == 0).
	LowStock() (low, out []models.Component, err error)

	// OldStock returns components with stock whose last outward date is null
	// or before staleSince, never-outwarded first, then oldest outward first,
	// then quantity descending.
	OldStock(staleSince time.Time) ([]models.Component, error)
}
