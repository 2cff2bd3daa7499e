package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/labforge/labstock/docs"
	"github.com/labforge/labstock/internal/alerts"
	"github.com/labforge/labstock/internal/auth"
	"github.com/labforge/labstock/internal/config"
	"github.com/labforge/labstock/internal/db"
	"github.com/labforge/labstock/internal/http/handlers"
	rl "github.com/labforge/labstock/internal/http/rate_limiter"
	"github.com/labforge/labstock/internal/http/router"
	"github.com/labforge/labstock/internal/redissvc"
	"github.com/labforge/labstock/internal/repo"
)

// @title LabStock API
// @version 1.0
// @description REST API for laboratory component inventory, stock transactions, and reports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, ctx)
	alerts.SetRedisService(redisService)
	alerts.SetSMTPConfig(cfg.SMTP)

	database, err := db.Connect(cfg.DB.URL)
	if err != nil {
		log.Fatal("could not connect to database: ", err)
	}
	defer database.Close()

	handlers.SetComponentRepo(repo.NewPostgresComponentRepository(database))
	handlers.SetCategoryRepo(repo.NewPostgresCategoryRepository(database))
	handlers.SetTransactionRepo(repo.NewPostgresTransactionRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetRefreshTokenStore(auth.NewRedisRefreshTokenStore(rdb, ctx), cfg.Auth.RefreshTokenTTL)
	handlers.SetOldStockMonths(cfg.Stock.OldStockMonths)

	go alerts.StartDailySummary(24 * time.Hour)
	go rl.StartVisitorCleanupLoop()

	r := router.NewRouter()
	log.Printf("server running on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatal(err)
	}
}
