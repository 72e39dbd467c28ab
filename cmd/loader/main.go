package main

import (
	"context"
	"contest_catalog/internal/app/fixture"
	"contest_catalog/internal/domain/repository"
	"contest_catalog/internal/platform/config"
	"flag"
	"log"
)

func main() {
	path := flag.String("f", "fixtures.yaml", "YAML file with contests, problems and submissions")
	flag.Parse()

	config.Load()
	cfg := config.AppConfig

	f, err := fixture.LoadFile(*path)
	if err != nil {
		log.Fatalf("Could not read fixtures: %v", err)
	}

	store, err := repository.NewStore(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName)
	if err != nil {
		log.Fatalf("Could not create store: %v", err)
	}

	summary, err := f.Apply(context.Background(), store)
	if err != nil {
		// Writes are idempotent: fix the input and run the loader again.
		log.Fatalf("Loading %s failed after contests=%d problems=%d submissions=%d: %v",
			*path, summary.Contests, summary.Problems, summary.Submissions, err)
	}
	log.Printf("Loaded %s: %d contests, %d problems, %d submissions written.",
		*path, summary.Contests, summary.Problems, summary.Submissions)
}
