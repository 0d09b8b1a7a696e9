package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/maghami/ticketline/internal/config"
	"github.com/maghami/ticketline/internal/database"
	"github.com/maghami/ticketline/internal/handler"
	"github.com/maghami/ticketline/internal/queue"
	"github.com/maghami/ticketline/internal/repository"
	"github.com/maghami/ticketline/internal/router"
	"github.com/maghami/ticketline/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("database: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	eventRepo := repository.NewEventRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute, cfg.BcryptCost)
	bookingSvc := service.NewBookingService(eventRepo, bookingRepo,
		repository.NewTxRunner(db), cfg.BookingDelay)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, cfg, rdb, router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Event:   handler.NewEventHandler(bookingSvc),
		Booking: handler.NewBookingHandler(bookingSvc, queue.NewPublisher()),
		Users:   userRepo,
	})

	// The consumer keeps its own reconnect loop; run it for the lifetime
	// of the process.
	go queue.StartBookingConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	go func() {
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Printf("server stopped")
}
