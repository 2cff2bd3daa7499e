package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labforge/labstock/internal/models"
)

// InMemoryComponentRepository is an in-memory implementation of
// ComponentRepository, used by the handler test suites.
type InMemoryComponentRepository struct {
	mu         sync.Mutex
	components []models.Component
	nextID     int

	// Set by the transaction repository so Delete can refuse components the
	// ledger references.
	hasTransactions func(componentID int) bool
}

func NewInMemoryComponentRepository() *InMemoryComponentRepository {
	return &InMemoryComponentRepository{
		components: []models.Component{},
		nextID:     1,
	}
}

func (r *InMemoryComponentRepository) Create(c models.Component) (models.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.components {
		if existing.PartNumber == c.PartNumber {
			return models.Component{}, ErrDuplicatePartNumber
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.components = append(r.components, c)
	return c, nil
}

func (r *InMemoryComponentRepository) GetByID(id int) (models.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.components {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Component{}, ErrComponentNotFound
}

func (r *InMemoryComponentRepository) GetByPartNumber(partNumber string) (models.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.components {
		if c.PartNumber == partNumber {
			return c, nil
		}
	}
	return models.Component{}, ErrComponentNotFound
}

func (r *InMemoryComponentRepository) GetAll() ([]models.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Component, len(r.components))
	copy(out, r.components)
	return out, nil
}

func matchesComponentFilter(c models.Component, cf ComponentFilter) bool {
	if cf.CategoryID != nil && c.CategoryID != *cf.CategoryID {
		return false
	}
	if cf.Search != "" {
		s := strings.ToLower(cf.Search)
		if !strings.Contains(strings.ToLower(c.Name), s) &&
			!strings.Contains(strings.ToLower(c.PartNumber), s) &&
			!strings.Contains(strings.ToLower(c.Description), s) &&
			!strings.Contains(strings.ToLower(c.Manufacturer), s) &&
			!strings.Contains(strings.ToLower(c.Supplier), s) {
			return false
		}
	}
	if cf.MinQty != nil && c.Quantity < *cf.MinQty {
		return false
	}
	if cf.MaxQty != nil && c.Quantity > *cf.MaxQty {
		return false
	}
	if cf.Location != "" && !strings.Contains(strings.ToLower(c.LocationBin), strings.ToLower(cf.Location)) {
		return false
	}
	return true
}

func (r *InMemoryComponentRepository) Filter(cf ComponentFilter) ([]models.Component, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Component
	for _, c := range r.components {
		if matchesComponentFilter(c, cf) {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	if cf.Offset != nil && *cf.Offset > total {
		return []models.Component{}, total, nil
	}

	start := 0
	if cf.Offset != nil {
		start = clamp(*cf.Offset, 0, total)
	}
	end := total
	if cf.Limit != nil && *cf.Limit > 0 {
		end = clamp(start+*cf.Limit, start, total)
	}

	return filtered[start:end], total, nil
}

func (r *InMemoryComponentRepository) Update(c models.Component) (models.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.components {
		if existing.PartNumber == c.PartNumber && existing.ID != c.ID {
			return models.Component{}, ErrDuplicatePartNumber
		}
	}
	for i, existing := range r.components {
		if existing.ID == c.ID {
			c.CreatedAt = existing.CreatedAt
			c.LastOutwardDate = existing.LastOutwardDate
			r.components[i] = c
			return c, nil
		}
	}
	return models.Component{}, ErrComponentNotFound
}

func (r *InMemoryComponentRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.components {
		if c.ID == id {
			if r.hasTransactions != nil && r.hasTransactions(id) {
				return ErrComponentHasTransactions
			}
			r.components = append(r.components[:i], r.components[i+1:]...)
			return nil
		}
	}
	return ErrComponentNotFound
}

func (r *InMemoryComponentRepository) LowStock() ([]models.Component, []models.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var low, out []models.Component
	for _, c := range r.components {
		switch {
		case c.Quantity == 0:
			out = append(out, c)
		case c.Quantity <= c.CriticalLowThreshold:
			low = append(low, c)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	return low, out, nil
}

func (r *InMemoryComponentRepository) OldStock(staleSince time.Time) ([]models.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stale []models.Component
	for _, c := range r.components {
		if c.Quantity == 0 {
			continue
		}
		if c.LastOutwardDate == nil || c.LastOutwardDate.Before(staleSince) {
			stale = append(stale, c)
		}
	}
	// Never-outwarded first, then oldest outward, then quantity descending.
	sort.SliceStable(stale, func(i, j int) bool {
		a, b := stale[i].LastOutwardDate, stale[j].LastOutwardDate
		switch {
		case a == nil && b == nil:
			return stale[i].Quantity > stale[j].Quantity
		case a == nil:
			return true
		case b == nil:
			return false
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return stale[i].Quantity > stale[j].Quantity
		}
	})
	return stale, nil
}

// applyDelta is the in-memory equivalent of the conditional quantity UPDATE:
// the availability check and the mutation happen under one lock acquisition.
func (r *InMemoryComponentRepository) applyDelta(id, delta int, outwardAt *time.Time) (models.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.components {
		if c.ID != id {
			continue
		}
		if c.Quantity+delta < 0 {
			return models.Component{}, &InsufficientStockError{Available: c.Quantity, Requested: -delta}
		}
		r.components[i].Quantity += delta
		r.components[i].UpdatedAt = time.Now().UTC()
		if outwardAt != nil {
			t := *outwardAt
			r.components[i].LastOutwardDate = &t
		}
		return r.components[i], nil
	}
	return models.Component{}, ErrComponentNotFound
}

// Clear removes all components; test hook.
func (r *InMemoryComponentRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components = []models.Component{}
	r.nextID = 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
