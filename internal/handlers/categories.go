// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"paperdeck/internal/models"
	"paperdeck/internal/service"
	"paperdeck/internal/tree"
)

// Categories groups the category API handlers around the service.
type Categories struct {
	service *service.CategoryService
}

// NewCategories creates the category handler group.
func NewCategories(svc *service.CategoryService) *Categories {
	return &Categories{service: svc}
}

// List returns the flat category list with paths and orphan diagnostics.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Load(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Tree returns the nested forest for display.
func (h *Categories) Tree(w http.ResponseWriter, r *http.Request) {
	roots, err := h.service.Tree(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if roots == nil {
		roots = []*tree.Node{}
	}
	writeJSON(w, http.StatusOK, roots)
}

type createRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// Create adds a category, optionally under a parent.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	created, err := h.service.Create(r.Context(), req.Name, req.ParentID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type renameRequest struct {
	Name string `json:"name"`
}

// Update renames a category.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	updated, err := h.service.Rename(r.Context(), id, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a category and its whole subtree.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// moveRequest carries the semantic result of a drag: the target node
// (or the literal string "root" for a top-level drop) and the relative
// position.
type moveRequest struct {
	TargetID json.RawMessage `json:"target_id"`
	Position string          `json:"position"`
}

// Move reparents/reorders the category in the URL relative to the target.
func (h *Categories) Move(w http.ResponseWriter, r *http.Request) {
	draggedID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	targetID, err := parseTarget(req.TargetID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	res, err := h.service.Move(r.Context(), draggedID, targetID, tree.Position(req.Position))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ReorderTree replaces the whole forest ordering with the submitted
// nested snapshot.
func (h *Categories) ReorderTree(w http.ResponseWriter, r *http.Request) {
	var snapshot []models.TreeNode
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	res, err := h.service.ReorderBulk(r.Context(), snapshot)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// pathID parses the {id} URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid category id"})
		return 0, false
	}
	return id, true
}

// parseTarget decodes a move target: a numeric id or the string "root".
func parseTarget(raw json.RawMessage) (int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, errInvalidTarget
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil || s != "root" {
			return 0, errInvalidTarget
		}
		return tree.RootID, nil
	}
	var id int64
	if err := json.Unmarshal(trimmed, &id); err != nil {
		return 0, errInvalidTarget
	}
	return id, nil
}

var errInvalidTarget = &service.ValidationError{Reason: `target_id must be a category id or "root"`}
