package main

import (
	"context"
	"contest_catalog/internal/api"
	"contest_catalog/internal/app/service"
	"contest_catalog/internal/app/worker"
	"contest_catalog/internal/domain/repository"
	"contest_catalog/internal/platform/config"
	"contest_catalog/internal/platform/database"
	"contest_catalog/internal/platform/queue"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	// 1. Load Configuration
	config.Load()
	cfg := config.AppConfig
	fmt.Println("Configuration loaded.")

	// 2. Database handle. With DB_MAX_IDLE_CONNS=0 every store operation
	// dials its own connection and closes it when done.
	db, err := database.Open(cfg.DBConnStr, database.Options{
		MaxIdleConns: cfg.DBMaxIdleConns,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer database.Close(db)
	if err := database.Ping(db); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	// 3. Redis
	rdb, err := queue.ConnectRedis(context.Background(), queue.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer queue.CloseRedis(rdb)

	// 4. Store and services
	store := repository.NewPgStore(db)
	catalogService := service.NewCatalogService(store)
	ingestService := service.NewIngestService(store, rdb, cfg.IngestQueueName)

	// 5. Ingest worker
	ingestWorker := worker.NewIngestWorker(rdb, ingestService, worker.Options{
		QueueName:      cfg.IngestQueueName,
		DeadLetterName: cfg.IngestDeadLetterName,
		MaxAttempts:    cfg.IngestMaxAttempts,
	})
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ingestWorker.Start(workerCtx)
	}()

	// 6. HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      api.NewRouter(catalogService, ingestService),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	wg.Wait()

	log.Println("Server and worker stopped gracefully.")
}
