package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/api"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/auth"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/config"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/database"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/repository"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/scheduler"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/service"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Sun circumference backend %s (%s)", version.Version, cfg.Server.Posture)

	// Durable backing; without it every mode lives in memory only
	var (
		db    *sql.DB
		store service.StateStore
	)
	if cfg.Database.Enabled {
		db, err = database.Open(cfg.Database.Path)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Printf("Connected to database: %s", cfg.Database.Path)

		codec, err := repository.NewStateCodec(cfg.State.EncryptionKey)
		if err != nil {
			log.Fatalf("Failed to configure state encryption: %v", err)
		}
		if codec.Encrypted() {
			log.Println("State records are encrypted at rest")
		}
		store = repository.NewStateRepository(db, codec)
	} else {
		log.Println("Persistence disabled, state is kept in memory only")
		store = repository.NewUnavailableStateStore("persistence disabled")
	}

	// Create services
	piService := service.NewPiService(store, cfg.State.StoreTimeout)
	systemService := service.NewSystemService(db, map[string]bool{
		"debug_dump": !cfg.Server.IsProduction(),
	})

	gate := auth.NewAPIKeyGate(cfg.Auth.SecretKey, cfg.Auth.PublicKey, cfg.Server.IsProduction(), cfg.Auth.ForceAuth)
	if gate.Enforced() {
		log.Println("Access gate enforces bearer credentials")
	}

	// Resync job for writes that failed while the database was unreachable
	var resync *scheduler.Scheduler
	if cfg.Database.Enabled && cfg.State.ResyncSchedule != "" {
		resync, err = scheduler.New(cfg.State.ResyncSchedule, piService)
		if err != nil {
			log.Fatalf("Failed to create resync scheduler: %v", err)
		}
		resync.Start()
		log.Printf("State resync scheduled: %s", cfg.State.ResyncSchedule)
	}

	// Create router
	router := api.NewRouter(piService, systemService, gate, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if resync != nil {
		if err := resync.Stop(ctx); err != nil {
			log.Printf("Resync scheduler did not stop cleanly: %v", err)
		}
		// Last chance for state that never reached the database
		if n := piService.FlushPending(ctx); n > 0 {
			log.Printf("Flushed %d pending mode(s) on shutdown", n)
		}
	}

	log.Println("Server exited")
}
