// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the paperdeck API.
// Handlers decode requests, call the category service, and map the
// service error taxonomy onto HTTP status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"paperdeck/internal/service"
	"paperdeck/internal/tree"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response failed", "error", err)
		}
	}
}

// errorBody is the uniform error response shape.
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps a service error to its status code. Validation and
// structural rejections happen before any write, so the client can
// re-prompt with no partial state; storage failures are the only 500s.
func respondError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.Reason})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, tree.ErrInvalidMove):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrDeleteBlocked):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
