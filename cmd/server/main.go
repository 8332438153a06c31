package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/citywave/table-reservation/internal/config"
	"github.com/citywave/table-reservation/internal/database"
	"github.com/citywave/table-reservation/internal/handler"
	"github.com/citywave/table-reservation/internal/queue"
	"github.com/citywave/table-reservation/internal/repository"
	"github.com/citywave/table-reservation/internal/router"
	"github.com/citywave/table-reservation/internal/service"
	"github.com/citywave/table-reservation/internal/store"
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win

	cfg := config.Load()

	// Redis backs the response cache and the store's cross-process change
	// notifications. nil means both degrade to process-local behavior.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache disabled, change fan-out stays local")
	}

	// Pick the document store: MySQL when configured, in-memory otherwise.
	var docs store.Store
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if err := database.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("schema setup failed: %v", err)
		}
		docs = store.NewMySQL(db, rdb)
	} else {
		log.Println("DB_HOST unset; using in-memory store (development only)")
		docs = store.NewMemory()
	}
	defer docs.Close()

	events := repository.NewEventRepo(docs)
	admins := repository.NewAdminRepo(docs)

	auth := service.NewAuthenticator(admins, cfg.RootAdminUser, cfg.RootAdminPass)
	reservations := service.NewReservationService(events, queue.NewPublisher())
	eventSvc := service.NewEventService(events)
	adminSvc := service.NewAdminService(admins, cfg.RootAdminUser)

	// The lifecycle consumer tails the broker and writes the reservation
	// audit log. It reconnects forever on its own.
	go func() {
		if err := queue.StartLifecycleConsumer(); err != nil {
			log.Printf("lifecycle consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	cacheCfg := config.LoadCacheConfig()

	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewPublicHandler(events, reservations, cfg.ReservationTTLDays), cacheCfg, rdb)
	router.RegisterGuest(e, handler.NewGuestHandler(reservations))
	router.RegisterAdmin(e, auth, cfg.JWTSecret,
		handler.NewAuthHandler(cfg, auth),
		handler.NewAdminEventHandler(eventSvc, events, reservations),
		handler.NewAdminAccountHandler(adminSvc))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
