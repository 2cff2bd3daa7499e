package repo

type InMemoryMetricsRepository struct {
	components   ComponentRepository
	transactions TransactionRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (r *InMemoryMetricsRepository) SetRepositories(components ComponentRepository, transactions TransactionRepository) {
	r.components = components
	r.transactions = transactions
}

func (r *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	components, err := r.components.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalComponents = len(components)

	for _, c := range components {
		m.InventoryValue += c.UnitPrice * float64(c.Quantity)
		switch {
		case c.Quantity == 0:
			m.OutOfStockCount++
		case c.Quantity <= c.CriticalLowThreshold:
			m.LowStockCount++
		}

		id := c.ID
		_, count, err := r.transactions.List(TransactionFilter{ComponentID: &id})
		if err != nil {
			return m, err
		}
		m.TotalTransactions += count
		if count > m.MostMovedComponent.TransactionCount {
			m.MostMovedComponent.Name = c.Name
			m.MostMovedComponent.TransactionCount = count
		}
	}

	return m, nil
}
