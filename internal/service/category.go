// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"paperdeck/internal/cache"
	"paperdeck/internal/models"
	"paperdeck/internal/store"
	"paperdeck/internal/tree"
)

// MaxNameLen is the longest accepted category name, in runes.
const MaxNameLen = 50

// CategoryService exposes the public category operations. Mutating
// calls are serialized by a mutex (single-writer discipline); each one
// validates first, computes the full target state in memory via the
// tree engine, and persists the row delta as a single transaction.
type CategoryService struct {
	mu sync.Mutex

	categories *store.CategoryStore
	papers     *store.PaperStore
	forest     *cache.ForestCache // nil when caching is disabled
}

// NewCategoryService creates the orchestrator. forest may be nil; the
// service then always reads through to the database.
func NewCategoryService(categories *store.CategoryStore, papers *store.PaperStore, forest *cache.ForestCache) *CategoryService {
	return &CategoryService{categories: categories, papers: papers, forest: forest}
}

// LoadResult is the flat view returned by Load and by every mutation.
type LoadResult struct {
	Categories []models.Category `json:"categories"`
	Orphans    []int64           `json:"orphans,omitempty"`
}

// load reads all rows and builds the forest with paths assigned.
// Orphan promotions are logged; the rows themselves stay untouched on
// disk until the next structural write re-canonicalizes them.
func (s *CategoryService) load() (*tree.Forest, error) {
	rows, err := s.categories.List()
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	f := tree.Build(rows)
	f.AssignPaths()
	for _, id := range f.Orphans {
		slog.Warn("category has dangling parent_id, promoted to root", "id", id)
	}
	return f, nil
}

// Load returns the current flat category list, including materialized
// paths and any orphan diagnostics.
func (s *CategoryService) Load(ctx context.Context) (*LoadResult, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return &LoadResult{Categories: f.Flatten(), Orphans: f.Orphans}, nil
}

// Tree returns the nested forest for display, served from the cache
// when possible.
func (s *CategoryService) Tree(ctx context.Context) ([]*tree.Node, error) {
	if s.forest != nil {
		if roots, ok := s.forest.Get(ctx); ok {
			return roots, nil
		}
	}

	f, err := s.load()
	if err != nil {
		return nil, err
	}
	if s.forest != nil {
		s.forest.Set(ctx, f.Roots)
	}
	return f.Roots, nil
}

// Create adds a category under the given parent (nil for a root),
// appended as the last sibling.
func (s *CategoryService) Create(ctx context.Context, name string, parentID *int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	f, err := s.load()
	if err != nil {
		return nil, err
	}

	c := &models.Category{Name: name, ParentID: parentID}
	parentPath := ""
	if parentID != nil {
		parent := f.Node(*parentID)
		if parent == nil {
			return nil, fmt.Errorf("%w: parent %d", ErrNotFound, *parentID)
		}
		parentPath = parent.Path
		c.SortOrder = len(parent.Children)
	} else {
		c.SortOrder = len(f.Roots)
	}

	created, err := s.categories.Create(c, parentPath)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	slog.Info("category created",
		"id", created.ID, "name", created.Name, "path", created.Path,
		"depth", tree.Depth(created.Path))
	return created, nil
}

// Rename changes a category's display name in place. The tree
// structure, order, and paths are untouched.
func (s *CategoryService) Rename(ctx context.Context, id int64, name string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	existing, err := s.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	if err := s.categories.Rename(id, name); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	existing.Name = name
	return existing, nil
}

// Move reparents and/or reorders a category relative to a target node
// (tree.RootID for a top-level drop). Validation runs before any write;
// the persisted delta covers exactly the rows whose parent, order, or
// path changed.
func (s *CategoryService) Move(ctx context.Context, draggedID, targetID int64, pos tree.Position) (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, err
	}

	before := rowsByID(f.Flatten())
	if err := f.Move(draggedID, targetID, pos); err != nil {
		if errors.Is(err, tree.ErrUnknownNode) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, err
	}

	delta := changedRows(before, f.Flatten())
	if err := s.categories.ApplyBatch(delta); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	slog.Info("category moved",
		"id", draggedID, "target", targetID, "position", pos, "rows_updated", len(delta))
	return &LoadResult{Categories: f.Flatten(), Orphans: f.Orphans}, nil
}

// ReorderBulk replaces the whole forest's parent/order assignments with
// a client-provided snapshot, e.g. after a multi-level drag
// reconciliation. The snapshot must cover every category exactly once.
func (s *CategoryService) ReorderBulk(ctx context.Context, snapshot []models.TreeNode) (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, err
	}

	before := rowsByID(f.Flatten())
	if err := f.ApplyOrdering(snapshot); err != nil {
		if errors.Is(err, tree.ErrBadSnapshot) {
			return nil, &ValidationError{Reason: err.Error()}
		}
		return nil, err
	}

	delta := changedRows(before, f.Flatten())
	if err := s.categories.ApplyBatch(delta); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	slog.Info("tree reordered", "rows_updated", len(delta))
	return &LoadResult{Categories: f.Flatten(), Orphans: f.Orphans}, nil
}

// Delete removes a category and its entire subtree. The operation is
// all-or-nothing: if any category in the deletion set still has papers
// filed under it, nothing is removed and ErrDeleteBlocked is returned.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return err
	}
	if f.Node(id) == nil {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	set := f.DeletionSet(id)
	filed, err := s.papers.CountInCategories(set)
	if err != nil {
		return err
	}
	if filed > 0 {
		return fmt.Errorf("%w: %d papers still filed in the subtree", ErrDeleteBlocked, filed)
	}

	// Renumber the sibling group the subtree leaves, in the same
	// transaction as the delete.
	before := rowsByID(f.Flatten())
	f.Remove(id)
	survivors := changedRows(before, f.Flatten())

	if err := s.categories.DeleteAndRenumber(set, survivors); err != nil {
		return err
	}

	s.invalidate(ctx)
	slog.Info("category deleted", "id", id, "cascade", len(set))
	return nil
}

// invalidate drops the cached forest after a mutation.
func (s *CategoryService) invalidate(ctx context.Context) {
	if s.forest != nil {
		s.forest.Invalidate(ctx)
	}
}

// validName trims and validates a category name.
func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Reason: "name is required"}
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return "", &ValidationError{Reason: fmt.Sprintf("name is too long (max %d characters)", MaxNameLen)}
	}
	return name, nil
}

// rowsByID indexes a flat row set for diffing.
func rowsByID(rows []models.Category) map[int64]models.Category {
	m := make(map[int64]models.Category, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

// changedRows returns the rows whose structural fields (parent, order,
// path) differ from the before-image. Rows absent from before are
// included too.
func changedRows(before map[int64]models.Category, after []models.Category) []models.Category {
	var delta []models.Category
	for _, r := range after {
		prev, ok := before[r.ID]
		if !ok || !sameParent(prev.ParentID, r.ParentID) ||
			prev.SortOrder != r.SortOrder || prev.Path != r.Path {
			delta = append(delta, r)
		}
	}
	return delta
}

// sameParent compares two nullable parent ids.
func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
