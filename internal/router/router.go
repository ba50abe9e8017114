// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// paperdeck API server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"paperdeck/internal/handlers"
	"paperdeck/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(categories *handlers.Categories) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categories.List)
		r.Post("/", categories.Create)

		// The nested view and the whole-tree reorder share a path.
		r.Get("/tree", categories.Tree)
		r.Put("/tree", categories.ReorderTree)

		r.Put("/{id}", categories.Update)
		r.Delete("/{id}", categories.Delete)
		r.Post("/{id}/move", categories.Move)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
