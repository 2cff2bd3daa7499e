package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM components`).Scan(&m.TotalComponents)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&m.TotalTransactions)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM components WHERE quantity > 0 AND quantity <= critical_low_threshold`).Scan(&m.LowStockCount)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM components WHERE quantity = 0`).Scan(&m.OutOfStockCount)
	_ = r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(unit_price * quantity), 0) FROM components`).Scan(&m.InventoryValue)

	_ = r.db.QueryRowContext(ctx, `
		SELECT c.name, COUNT(*) as cnt
		FROM transactions t
		JOIN components c ON t.component_id = c.id
		GROUP BY c.name
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.MostMovedComponent.Name, &m.MostMovedComponent.TransactionCount)

	return m, nil
}
