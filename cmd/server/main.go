package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/skyora/flight-ticketing/internal/booking"
	"github.com/skyora/flight-ticketing/internal/config"
	"github.com/skyora/flight-ticketing/internal/database"
	"github.com/skyora/flight-ticketing/internal/handler"
	"github.com/skyora/flight-ticketing/internal/queue"
	"github.com/skyora/flight-ticketing/internal/repository"
	"github.com/skyora/flight-ticketing/internal/router"
	queue_publisher "github.com/skyora/flight-ticketing/internal/service"
)

func main() {
	// A local .env is convenient in development; in deployment the
	// variables come from the environment and the file is absent.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	engine := booking.NewEngine(store)
	tickets := handler.NewTicketHandler(engine, queue_publisher.PublishTicketPurchased)

	// Redis is optional; a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterTickets(e, tickets, cfg.JWTSecret, rdb, config.LoadRateLimitConfig(), config.LoadCacheConfig())

	// Consume ticket.purchased events in the background; the consumer
	// reconnects on broker failures and never takes the server down.
	go func() {
		if err := queue.StartPurchaseConsumer(); err != nil {
			log.Printf("purchase consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
