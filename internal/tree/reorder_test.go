// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tree

import (
	"errors"
	"testing"

	"paperdeck/internal/models"
)

func TestApplyOrderingRestructures(t *testing.T) {
	f := buildSample(t)

	// Physics first, CS under it, ML promoted to a sibling of AI/DB.
	snapshot := []models.TreeNode{
		{ID: 5, Children: []models.TreeNode{
			{ID: 1, Children: []models.TreeNode{
				{ID: 3},
				{ID: 2},
				{ID: 4},
			}},
		}},
	}
	if err := f.ApplyOrdering(snapshot); err != nil {
		t.Fatalf("ApplyOrdering: %v", err)
	}

	if len(f.Roots) != 1 || f.Roots[0].ID != 5 {
		t.Fatalf("roots: got %d, want Physics only", len(f.Roots))
	}
	cs := f.Node(1)
	if len(cs.Children) != 3 {
		t.Fatalf("CS children: got %d, want 3", len(cs.Children))
	}
	wantOrder := []int64{3, 2, 4}
	for i, id := range wantOrder {
		if cs.Children[i].ID != id {
			t.Errorf("CS child %d: got %d, want %d", i, cs.Children[i].ID, id)
		}
	}
	if got := f.Node(4).Path; got != "5.1.4" {
		t.Errorf("path(4): got %q, want %q", got, "5.1.4")
	}
	assertDense(t, f)
}

func TestApplyOrderingRejectsDuplicateID(t *testing.T) {
	f := buildSample(t)
	snapshot := []models.TreeNode{
		{ID: 1, Children: []models.TreeNode{{ID: 2}, {ID: 2}, {ID: 3}, {ID: 4}}},
		{ID: 5},
	}
	if err := f.ApplyOrdering(snapshot); !errors.Is(err, ErrBadSnapshot) {
		t.Errorf("duplicate id: got %v, want ErrBadSnapshot", err)
	}
}

func TestApplyOrderingRejectsUnknownID(t *testing.T) {
	f := buildSample(t)
	snapshot := []models.TreeNode{
		{ID: 1, Children: []models.TreeNode{{ID: 2}, {ID: 3}, {ID: 4}}},
		{ID: 5},
		{ID: 42},
	}
	if err := f.ApplyOrdering(snapshot); !errors.Is(err, ErrBadSnapshot) {
		t.Errorf("unknown id: got %v, want ErrBadSnapshot", err)
	}
}

func TestApplyOrderingRejectsMissingNodes(t *testing.T) {
	f := buildSample(t)
	snapshot := []models.TreeNode{{ID: 1}, {ID: 5}}
	if err := f.ApplyOrdering(snapshot); !errors.Is(err, ErrBadSnapshot) {
		t.Errorf("partial snapshot: got %v, want ErrBadSnapshot", err)
	}
}

func TestApplyOrderingResolvesOrphans(t *testing.T) {
	rows := append(sampleRows(), row(9, "Stray", pid(777), 0))
	f := Build(rows)
	f.AssignPaths()
	if len(f.Orphans) != 1 {
		t.Fatalf("precondition: orphans %v", f.Orphans)
	}

	snapshot := []models.TreeNode{
		{ID: 1, Children: []models.TreeNode{
			{ID: 2, Children: []models.TreeNode{{ID: 4}}},
			{ID: 3},
			{ID: 9},
		}},
		{ID: 5},
	}
	if err := f.ApplyOrdering(snapshot); err != nil {
		t.Fatalf("ApplyOrdering: %v", err)
	}
	if len(f.Orphans) != 0 {
		t.Errorf("orphans not cleared: %v", f.Orphans)
	}
	if got := f.Node(9).Path; got != "1.9" {
		t.Errorf("path(9): got %q, want %q", got, "1.9")
	}
}
