// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"paperdeck/internal/models"
)

// PaperStore manages paper rows. The tree engine never touches papers;
// they participate only as the external constraint that can block a
// category deletion, and as the per-category counts on listings.
type PaperStore struct {
	db *sql.DB
}

// NewPaperStore returns a new PaperStore.
func NewPaperStore(db *sql.DB) *PaperStore {
	return &PaperStore{db: db}
}

const paperColumns = `id, title, authors, doi, category_id, created_at, updated_at`

// Create inserts a new paper and returns it. A fresh UUID is assigned
// when the caller did not set one.
func (s *PaperStore) Create(p *models.Paper) (*models.Paper, error) {
	created := *p
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO papers (id, title, authors, doi, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, created.ID, created.Title, created.Authors, created.DOI, created.CategoryID, now, now)
	if err != nil {
		return nil, fmt.Errorf("create paper: %w", err)
	}
	return &created, nil
}

// ListByCategory returns the papers filed directly under one category.
func (s *PaperStore) ListByCategory(categoryID int64) ([]models.Paper, error) {
	rows, err := s.db.Query(`
		SELECT `+paperColumns+` FROM papers WHERE category_id = $1 ORDER BY title
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	defer rows.Close()

	var items []models.Paper
	for rows.Next() {
		var p models.Paper
		err := rows.Scan(&p.ID, &p.Title, &p.Authors, &p.DOI, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// CountInCategories returns how many papers are filed under any of the
// given category ids. Used to decide whether a cascade delete is blocked.
func (s *PaperStore) CountInCategories(ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM papers WHERE category_id IN (` + placeholders(len(ids)) + `)`
	var count int
	if err := s.db.QueryRow(query, int64Args(ids)...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count papers in categories: %w", err)
	}
	return count, nil
}
