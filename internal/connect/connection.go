package connect

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var PostgresClient *sqlx.DB

// PostgresConnect opens the pool described by DATABASE_URL and verifies it
// with a ping before anyone depends on it.
func PostgresConnect() (*sqlx.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres pool: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %v", err)
	}

	PostgresClient = db
	return db, nil
}

func PostgresDisconnect() error {
	if PostgresClient == nil {
		return nil
	}
	if err := PostgresClient.Close(); err != nil {
		return fmt.Errorf("failed to close postgres pool: %v", err)
	}
	PostgresClient = nil
	return nil
}
