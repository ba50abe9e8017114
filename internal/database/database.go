// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package database handles database connection management and migration
// execution using goose. Two drivers are supported: PostgreSQL (pgx)
// for server deployments and embedded SQLite (modernc, pure Go) for
// the single-user desktop setup. Both speak database/sql and both
// accept $1-style placeholders, so the store layer is driver-agnostic.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var embedMigrations embed.FS

// Supported driver names for Open and Migrate.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open opens a connection pool for the given driver and DSN.
// It verifies the connection with a ping before returning.
func Open(driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch driver {
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
	case DriverSQLite:
		db, err = sql.Open("sqlite", dsn)
		if db != nil {
			// SQLite serializes writers; a single connection avoids
			// SQLITE_BUSY under concurrent pool checkouts.
			db.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected", "driver", driver)
	return db, nil
}

// Migrate runs all pending goose migrations from the embedded SQL
// files for the given driver. Each driver has its own migration
// directory since the DDL dialects differ (BIGSERIAL vs AUTOINCREMENT).
func Migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations/"+driver); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied", "driver", driver)
	return nil
}
