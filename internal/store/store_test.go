// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for the store
// tests. Tests run against an in-memory SQLite database so they need
// no external services; the same SQL runs against PostgreSQL.
package store

import (
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"

	"paperdeck/internal/database"
	"paperdeck/internal/models"
)

// testDB opens an in-memory database and runs migrations. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		db.Close()
		t.Fatalf("migrate test db: %v", err)
	}

	// Reset goose global state so other packages can migrate too.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// mustCreate inserts a category under the given parent and fails the
// test on error.
func mustCreate(t *testing.T, s *CategoryStore, name string, parent *models.Category, order int) *models.Category {
	t.Helper()

	c := &models.Category{Name: name, SortOrder: order}
	parentPath := ""
	if parent != nil {
		c.ParentID = &parent.ID
		parentPath = parent.Path
	}
	created, err := s.Create(c, parentPath)
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	return created
}
