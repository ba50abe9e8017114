// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// tests: a full router backed by an in-memory SQLite database, driven
// through httptest.
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pressly/goose/v3"

	"paperdeck/internal/database"
	"paperdeck/internal/middleware"
	"paperdeck/internal/service"
	"paperdeck/internal/store"
)

// testRouter builds the API over a fresh in-memory database.
func testRouter(t *testing.T) chi.Router {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		db.Close()
		t.Fatalf("migrate test db: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	svc := service.NewCategoryService(store.NewCategoryStore(db), store.NewPaperStore(db), nil)
	categories := NewCategories(svc)

	// Mirror the real route table without importing the router package
	// (it imports handlers).
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categories.List)
		r.Post("/", categories.Create)
		r.Get("/tree", categories.Tree)
		r.Put("/tree", categories.ReorderTree)
		r.Put("/{id}", categories.Update)
		r.Delete("/{id}", categories.Delete)
		r.Post("/{id}/move", categories.Move)
	})
	return r
}

// do performs a JSON request against the router and returns the recorder.
func do(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a response body, failing the test on error.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
