package repo

import (
	"sync"
	"time"

	"github.com/labforge/labstock/internal/models"
)

// InMemoryTransactionRepository is an in-memory ledger backed by an
// InMemoryComponentRepository for the quantity bookkeeping.
type InMemoryTransactionRepository struct {
	mu           sync.Mutex
	components   *InMemoryComponentRepository
	users        UserRepository
	transactions []models.Transaction
	nextID       int
}

func NewInMemoryTransactionRepository(components *InMemoryComponentRepository, users UserRepository) *InMemoryTransactionRepository {
	r := &InMemoryTransactionRepository{
		components:   components,
		users:        users,
		transactions: []models.Transaction{},
		nextID:       1,
	}
	components.hasTransactions = r.references
	return r
}

// references reports whether the ledger holds any entry for the component.
func (r *InMemoryTransactionRepository) references(componentID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.ComponentID == componentID {
			return true
		}
	}
	return false
}

func (r *InMemoryTransactionRepository) Record(t models.Transaction) (models.Transaction, models.Component, error) {
	now := time.Now().UTC()
	delta := t.Quantity
	var outwardAt *time.Time
	if t.Type == models.Outward {
		delta = -t.Quantity
		outwardAt = &now
	}

	// The availability check and the mutation are one atomic call; the
	// ledger row is only appended once the adjustment succeeded.
	component, err := r.components.applyDelta(t.ComponentID, delta, outwardAt)
	if err != nil {
		return models.Transaction{}, models.Component{}, err
	}

	t.CreatedAt = now
	t.ComponentName = component.Name
	t.PartNumber = component.PartNumber
	if r.users != nil {
		if u, err := r.users.GetByID(t.UserID); err == nil {
			t.UserName = u.DisplayName()
		}
	}

	r.mu.Lock()
	t.ID = r.nextID
	r.nextID++
	r.transactions = append(r.transactions, t)
	r.mu.Unlock()

	return t, component, nil
}

func (r *InMemoryTransactionRepository) List(tf TransactionFilter) ([]models.Transaction, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Transaction
	for i := len(r.transactions) - 1; i >= 0; i-- { // newest first
		t := r.transactions[i]
		if tf.ComponentID != nil && t.ComponentID != *tf.ComponentID {
			continue
		}
		if tf.Since != nil && t.CreatedAt.Before(*tf.Since) {
			continue
		}
		if tf.Until != nil && t.CreatedAt.After(*tf.Until) {
			continue
		}
		filtered = append(filtered, t)
	}

	total := len(filtered)
	if tf.Offset != nil && *tf.Offset > total {
		return []models.Transaction{}, total, nil
	}

	start := 0
	if tf.Offset != nil {
		start = clamp(*tf.Offset, 0, total)
	}
	end := total
	if tf.Limit != nil && *tf.Limit > 0 {
		end = clamp(start+*tf.Limit, start, total)
	}

	return filtered[start:end], total, nil
}

// Clear removes all ledger entries; test hook.
func (r *InMemoryTransactionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = []models.Transaction{}
	r.nextID = 1
}
