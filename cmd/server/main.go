package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pressly/goose"

	"github.com/Gladwin-7/bike-rental-system/internal/config"
	"github.com/Gladwin-7/bike-rental-system/internal/database"
	"github.com/Gladwin-7/bike-rental-system/internal/handler"
	"github.com/Gladwin-7/bike-rental-system/internal/metrics"
	"github.com/Gladwin-7/bike-rental-system/internal/middleware"
	"github.com/Gladwin-7/bike-rental-system/internal/queue"
	"github.com/Gladwin-7/bike-rental-system/internal/repository"
	"github.com/Gladwin-7/bike-rental-system/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Apply pending schema migrations before serving traffic.
	if err := goose.SetDialect("mysql"); err != nil {
		log.Fatal(err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Redis backs the bike-list cache and the rate limiter. When it is
	// unreachable both degrade to no-ops and the API keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response caching and rate limiting disabled")
	}

	customers := repository.NewCustomerRepo(db)
	admins := repository.NewAdminRepo(db)
	bikes := repository.NewBikeRepo(db)
	rentals := repository.NewRentalRepo(db)

	cache := middleware.NewCache(config.LoadCacheConfig(), rdb)

	authHandler := handler.NewAuthHandler(cfg, customers, admins)
	bikeHandler := handler.NewBikeHandler(bikes, rentals, cache)
	rentalHandler := handler.NewRentalHandler(bikes, rentals, cache)

	// Background consumer appends rental events to logs/rental.log.
	go func() {
		if err := queue.StartRentalConsumer(); err != nil {
			log.Printf("rental consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS()) // the dashboards are served from another origin
	e.Use(metrics.Middleware())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, authHandler, bikeHandler, rentalHandler, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
