// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"paperdeck/internal/models"
	"paperdeck/internal/service"
	"paperdeck/internal/tree"
)

// createCategory posts a new category and returns the decoded row.
func createCategory(t *testing.T, r chi.Router, name string, parentID *int64) models.Category {
	t.Helper()

	rec := do(t, r, http.MethodPost, "/api/categories", map[string]any{
		"name":      name,
		"parent_id": parentID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create %q: status %d, body %s", name, rec.Code, rec.Body.String())
	}
	var c models.Category
	decode(t, rec, &c)
	return c
}

func TestCreateAndListCategories(t *testing.T) {
	r := testRouter(t)

	cs := createCategory(t, r, "CS", nil)
	ai := createCategory(t, r, "AI", &cs.ID)

	rec := do(t, r, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}

	var res service.LoadResult
	decode(t, rec, &res)
	if len(res.Categories) != 2 {
		t.Fatalf("categories: got %d, want 2", len(res.Categories))
	}
	if res.Categories[1].Path != fmt.Sprintf("%d.%d", cs.ID, ai.ID) {
		t.Errorf("AI path: got %q", res.Categories[1].Path)
	}
}

func TestCreateRejectsBadName(t *testing.T) {
	r := testRouter(t)

	rec := do(t, r, http.MethodPost, "/api/categories", map[string]any{"name": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank name: status %d, want 400", rec.Code)
	}
}

func TestCreateRejectsMissingParent(t *testing.T) {
	r := testRouter(t)

	missing := int64(999)
	rec := do(t, r, http.MethodPost, "/api/categories", map[string]any{
		"name": "Stray", "parent_id": missing,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing parent: status %d, want 404", rec.Code)
	}
}

func TestRenameCategory(t *testing.T) {
	r := testRouter(t)
	c := createCategory(t, r, "Datbases", nil)

	rec := do(t, r, http.MethodPut, fmt.Sprintf("/api/categories/%d", c.ID), map[string]any{
		"name": "Databases",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename: status %d", rec.Code)
	}

	var updated models.Category
	decode(t, rec, &updated)
	if updated.Name != "Databases" {
		t.Errorf("name: got %q", updated.Name)
	}

	rec = do(t, r, http.MethodPut, "/api/categories/999", map[string]any{"name": "X"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("rename missing: status %d, want 404", rec.Code)
	}
	rec = do(t, r, http.MethodPut, "/api/categories/abc", map[string]any{"name": "X"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status %d, want 400", rec.Code)
	}
}

func TestMoveCategory(t *testing.T) {
	r := testRouter(t)
	cs := createCategory(t, r, "CS", nil)
	ai := createCategory(t, r, "AI", &cs.ID)
	db := createCategory(t, r, "DB", &cs.ID)

	// Drag DB above AI.
	rec := do(t, r, http.MethodPost, fmt.Sprintf("/api/categories/%d/move", db.ID), map[string]any{
		"target_id": ai.ID, "position": "above",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("move: status %d, body %s", rec.Code, rec.Body.String())
	}

	var res service.LoadResult
	decode(t, rec, &res)
	orders := map[string]int{}
	for _, c := range res.Categories {
		orders[c.Name] = c.SortOrder
	}
	if orders["DB"] != 0 || orders["AI"] != 1 {
		t.Errorf("orders after move: DB=%d AI=%d, want 0/1", orders["DB"], orders["AI"])
	}
}

func TestMoveToRootSentinel(t *testing.T) {
	r := testRouter(t)
	cs := createCategory(t, r, "CS", nil)
	ai := createCategory(t, r, "AI", &cs.ID)

	rec := do(t, r, http.MethodPost, fmt.Sprintf("/api/categories/%d/move", ai.ID), map[string]any{
		"target_id": "root", "position": "child",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("move to root: status %d, body %s", rec.Code, rec.Body.String())
	}

	var res service.LoadResult
	decode(t, rec, &res)
	for _, c := range res.Categories {
		if c.ID == ai.ID && c.ParentID != nil {
			t.Error("AI should be a root after the move")
		}
	}
}

func TestMoveRejectsCycle(t *testing.T) {
	r := testRouter(t)
	cs := createCategory(t, r, "CS", nil)
	ai := createCategory(t, r, "AI", &cs.ID)

	rec := do(t, r, http.MethodPost, fmt.Sprintf("/api/categories/%d/move", cs.ID), map[string]any{
		"target_id": ai.ID, "position": "child",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("cycle move: status %d, want 422", rec.Code)
	}

	// Self drop.
	rec = do(t, r, http.MethodPost, fmt.Sprintf("/api/categories/%d/move", cs.ID), map[string]any{
		"target_id": cs.ID, "position": "below",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("self drop: status %d, want 422", rec.Code)
	}
}

func TestMoveRejectsBadTarget(t *testing.T) {
	r := testRouter(t)
	cs := createCategory(t, r, "CS", nil)

	rec := do(t, r, http.MethodPost, fmt.Sprintf("/api/categories/%d/move", cs.ID), map[string]any{
		"target_id": "everywhere", "position": "child",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad target: status %d, want 400", rec.Code)
	}
}

func TestDeleteCascades(t *testing.T) {
	r := testRouter(t)
	cs := createCategory(t, r, "CS", nil)
	ai := createCategory(t, r, "AI", &cs.ID)
	createCategory(t, r, "ML", &ai.ID)

	rec := do(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cs.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/api/categories", nil)
	var res service.LoadResult
	decode(t, rec, &res)
	if len(res.Categories) != 0 {
		t.Errorf("categories after cascade: got %d, want 0", len(res.Categories))
	}

	rec = do(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cs.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double delete: status %d, want 404", rec.Code)
	}
}

func TestTreeEndpoint(t *testing.T) {
	r := testRouter(t)
	cs := createCategory(t, r, "CS", nil)
	createCategory(t, r, "AI", &cs.ID)
	createCategory(t, r, "Physics", nil)

	rec := do(t, r, http.MethodGet, "/api/categories/tree", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tree: status %d", rec.Code)
	}

	var roots []*tree.Node
	decode(t, rec, &roots)
	if len(roots) != 2 {
		t.Fatalf("roots: got %d, want 2", len(roots))
	}
	if roots[0].Name != "CS" || len(roots[0].Children) != 1 {
		t.Error("CS subtree malformed")
	}
}

func TestReorderTreeEndpoint(t *testing.T) {
	r := testRouter(t)
	cs := createCategory(t, r, "CS", nil)
	ai := createCategory(t, r, "AI", &cs.ID)
	phys := createCategory(t, r, "Physics", nil)

	snapshot := []models.TreeNode{
		{ID: phys.ID, Children: []models.TreeNode{
			{ID: cs.ID, Children: []models.TreeNode{{ID: ai.ID}}},
		}},
	}
	rec := do(t, r, http.MethodPut, "/api/categories/tree", snapshot)
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder: status %d, body %s", rec.Code, rec.Body.String())
	}

	var res service.LoadResult
	decode(t, rec, &res)
	for _, c := range res.Categories {
		if c.ID == cs.ID {
			if c.ParentID == nil || *c.ParentID != phys.ID {
				t.Error("CS not reparented under Physics")
			}
		}
	}

	// Partial snapshot is rejected before any write.
	rec = do(t, r, http.MethodPut, "/api/categories/tree", []models.TreeNode{{ID: cs.ID}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("partial snapshot: status %d, want 400", rec.Code)
	}
}
