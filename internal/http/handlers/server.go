package handlers

import (
	"time"

	"github.com/labforge/labstock/internal/auth"
	"github.com/labforge/labstock/internal/repo"
)

var (
	componentRepo   repo.ComponentRepository
	categoryRepo    repo.CategoryRepository
	transactionRepo repo.TransactionRepository
	userRepo        repo.UserRepository
	metricsRepo     repo.MetricsRepository

	refreshTokens   auth.RefreshTokenStore
	refreshTokenTTL = 7 * 24 * time.Hour

	// Staleness window for the old-stock report.
	oldStockMonths = 3
)

func SetComponentRepo(r repo.ComponentRepository) {
	componentRepo = r
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetTransactionRepo(r repo.TransactionRepository) {
	transactionRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetRefreshTokenStore(s auth.RefreshTokenStore, ttl time.Duration) {
	refreshTokens = s
	if ttl > 0 {
		refreshTokenTTL = ttl
	}
}

func SetOldStockMonths(months int) {
	if months > 0 {
		oldStockMonths = months
	}
}
