package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// Options controls connection reuse between operations.
type Options struct {
	MaxIdleConns int
	MaxOpenConns int
}

// Open returns a handle for connStr. No connection is made until the first
// operation acquires one.
func Open(connStr string, opts Options) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("database.Open: %w", err)
	}

	db.SetMaxIdleConns(opts.MaxIdleConns)
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// Ping verifies the database is reachable; used at startup only.
func Ping(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database.Ping: %w", err)
	}
	log.Println("Successfully connected to PostgreSQL database!")
	return nil
}

func Close(db *sql.DB) {
	if db != nil {
		db.Close()
		log.Println("Database connection closed.")
	}
}
