package repo

import (
	"errors"
	"fmt"
)

// ErrComponentNotFound is returned when a component is not found in the repository.
var ErrComponentNotFound = errors.New("component not found")

// ErrCategoryNotFound is returned when a category is not found in the repository.
var ErrCategoryNotFound = errors.New("category not found")

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicatePartNumber is returned when a component's part number collides
// with an existing one.
var ErrDuplicatePartNumber = errors.New("part number already exists")

// ErrDuplicateCategoryName is returned when a category name collides with an
// existing one.
var ErrDuplicateCategoryName = errors.New("category name already exists")

// ErrDuplicateEmail is returned when a user's email or username collides with
// an existing account.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrCategoryInUse is returned when deleting a category still referenced by
// components.
var ErrCategoryInUse = errors.New("category is referenced by components")

// ErrComponentHasTransactions is returned when deleting a component that the
// ledger still references.
var ErrComponentHasTransactions = errors.New("component has recorded transactions")

// InsufficientStockError is returned when an OUTWARD transaction requests
// more than the component holds. The check and the quantity update are a
// single atomic unit, so Available is the quantity the rejection was decided
// against.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}
