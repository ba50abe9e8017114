// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements persistence for categories and papers over
// database/sql. Queries use $1 placeholders, which both pgx and the
// embedded SQLite driver accept, so one store serves both backends.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"paperdeck/internal/models"
	"paperdeck/internal/tree"
)

// CategoryStore manages category rows in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, parent_id, sort_order, path, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.ParentID, &c.SortOrder, &c.Path,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by sort_order, with paper counts.
// The order here only determines scan order; the tree engine re-sorts
// siblings deterministically when building the forest.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.parent_id, c.sort_order, c.path,
		       c.created_at, c.updated_at,
		       COUNT(p.id) AS paper_count
		FROM categories c
		LEFT JOIN papers p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.parent_id, c.sort_order, c.path, c.created_at, c.updated_at
		ORDER BY c.sort_order, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.ParentID, &c.SortOrder, &c.Path,
			&c.CreatedAt, &c.UpdatedAt,
			&c.PaperCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. The materialized path
// depends on the generated id, so the insert and the path update run
// in one transaction: the row is never visible with a stale path.
func (s *CategoryStore) Create(c *models.Category, parentPath string) (*models.Category, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	var id int64
	err = tx.QueryRow(`
		INSERT INTO categories (name, parent_id, sort_order, path, created_at, updated_at)
		VALUES ($1, $2, $3, '', $4, $4)
		RETURNING id
	`, c.Name, c.ParentID, c.SortOrder, now).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	path := tree.ChildPath(parentPath, id)
	if _, err := tx.Exec(`UPDATE categories SET path = $1 WHERE id = $2`, path, id); err != nil {
		return nil, fmt.Errorf("set category path: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create category: %w", err)
	}

	created := *c
	created.ID = id
	created.Path = path
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

// Rename updates a category's name in place.
func (s *CategoryStore) Rename(id int64, name string) error {
	_, err := s.db.Exec(`
		UPDATE categories SET name = $1, updated_at = $2 WHERE id = $3
	`, name, time.Now(), id)
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// ApplyBatch persists the structural delta of one tree operation —
// parent_id, sort_order, and path per row — as a single transaction.
// A mid-operation failure rolls everything back, so on-disk state can
// never hold a partially applied move or reorder.
func (s *CategoryStore) ApplyBatch(rows []models.Category) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE categories SET parent_id = $1, sort_order = $2, path = $3, updated_at = $4
		WHERE id = $5`)
	if err != nil {
		return fmt.Errorf("prepare batch update: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, r := range rows {
		if _, err := stmt.Exec(r.ParentID, r.SortOrder, r.Path, now, r.ID); err != nil {
			return fmt.Errorf("update category %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch update: %w", err)
	}
	return nil
}

// DeleteAndRenumber removes the given ids and re-persists the
// surviving sibling rows in the same transaction, so a cascade delete
// and the renumbering of the group it left commit or roll back as one.
func (s *CategoryStore) DeleteAndRenumber(ids []int64, survivors []models.Category) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `DELETE FROM categories WHERE id IN (` + placeholders(len(ids)) + `)`
	if _, err := tx.Exec(query, int64Args(ids)...); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}

	now := time.Now()
	for _, r := range survivors {
		_, err := tx.Exec(`
			UPDATE categories SET parent_id = $1, sort_order = $2, path = $3, updated_at = $4
			WHERE id = $5`, r.ParentID, r.SortOrder, r.Path, now, r.ID)
		if err != nil {
			return fmt.Errorf("renumber category %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// placeholders returns "$1, $2, …, $n" for an IN clause.
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

// int64Args widens ids to the []any shape Exec wants.
func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
