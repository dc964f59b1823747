// Command check_db verifies that the configured database is reachable and
// prints the server version.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cqhei/cqhei-survey/internal/config"
	"github.com/cqhei/cqhei-survey/internal/db"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	fmt.Printf("Driver: %s\n", cfg.Database.Driver)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var version string
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		version, err = postgresVersion(ctx, cfg.Database.DSN)
	default:
		fmt.Printf("Path: %s\n", cfg.Database.SQLitePath)
		version, err = sqliteVersion(ctx, cfg.Database)
	}
	if err != nil {
		fmt.Printf("Database connection FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database connection SUCCESSFUL!")
	fmt.Printf("Server version: %s\n", version)
}

func postgresVersion(ctx context.Context, dsn string) (string, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return "", fmt.Errorf("ping: %w (check firewall rules and credentials)", err)
	}

	var version string
	if err := conn.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", err
	}
	return version, nil
}

func sqliteVersion(ctx context.Context, cfg config.DatabaseConfig) (string, error) {
	d, err := db.Open(cfg, false)
	if err != nil {
		return "", err
	}

	var version string
	if err := d.WithContext(ctx).Raw("SELECT sqlite_version()").Scan(&version).Error; err != nil {
		return "", err
	}
	return "SQLite " + version, nil
}
