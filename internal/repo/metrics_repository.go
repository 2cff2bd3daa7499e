package repo

type MostMovedComponent struct {
	Name             string `json:"name"`
	TransactionCount int    `json:"transaction_count"`
}

type Metrics struct {
	TotalComponents    int                `json:"total_components"`
	TotalTransactions  int                `json:"total_transactions"`
	LowStockCount      int                `json:"low_stock_count"`
	OutOfStockCount    int                `json:"out_of_stock_count"`
	InventoryValue     float64            `json:"inventory_value"`
	MostMovedComponent MostMovedComponent `json:"most_moved_component"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
