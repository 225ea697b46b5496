package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-api/internal/cache"
	"github.com/iliyamo/inventory-api/internal/config"
	"github.com/iliyamo/inventory-api/internal/database"
	"github.com/iliyamo/inventory-api/internal/handler"
	"github.com/iliyamo/inventory-api/internal/queue"
	"github.com/iliyamo/inventory-api/internal/ratelimit"
	"github.com/iliyamo/inventory-api/internal/repository"
	"github.com/iliyamo/inventory-api/internal/router"
	"github.com/iliyamo/inventory-api/internal/service"
)

// main is the composition root: every dependency is constructed once here
// and passed down explicitly.  No package holds lazily initialized global
// state.
func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and switches the
	// rate limiter to its in-process strategy.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: using in-process rate limiter, caching disabled")
	}

	users := repository.NewUserRepo(db)
	itemsRepo := repository.NewItemRepo(db)

	itemCache := cache.New(rdb)
	limiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow, rdb)
	publisher := service.NewEventPublisher(cfg.RabbitURL)
	items := service.NewItemService(itemsRepo, itemCache, cfg.ItemCacheTTL, cfg.ListCacheTTL, publisher)

	authHandler := handler.NewAuthHandler(cfg, users)
	itemHandler := handler.NewItemHandler(items)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, limiter, users, authHandler, itemHandler)

	if cfg.RabbitURL != "" {
		go func() {
			if err := queue.StartItemConsumer(cfg.RabbitURL); err != nil {
				log.Printf("item consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
