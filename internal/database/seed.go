// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Seed populates the database with a starter category hierarchy for
// development. It is a no-op when any category already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	now := time.Now()

	// Two roots with one child each. Paths are written directly since
	// the ids are known: the first insert into an empty table gets id 1.
	seedRows := []struct {
		name      string
		parentID  *int64
		sortOrder int
		path      string
	}{
		{"Computer Science", nil, 0, "1"},
		{"Mathematics", nil, 1, "2"},
		{"Machine Learning", ptrInt64(1), 0, "1.3"},
		{"Databases", ptrInt64(1), 1, "1.4"},
	}

	for _, r := range seedRows {
		_, err := db.Exec(`
			INSERT INTO categories (name, parent_id, sort_order, path, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, r.name, r.parentID, r.sortOrder, r.path, now, now)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", r.name, err)
		}
	}

	slog.Info("database seeded with starter categories", "count", len(seedRows))
	return nil
}

func ptrInt64(v int64) *int64 { return &v }
