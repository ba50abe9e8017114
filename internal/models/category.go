// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the persisted data shapes shared by the store,
// tree engine, and HTTP layers.
package models

import "time"

// Category represents one folder in the paper library hierarchy.
// Categories form a forest: ParentID is nil for root folders.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parent_id"`
	SortOrder int       `json:"sort_order"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual field populated by store listings.
	PaperCount int `json:"paper_count"`
}

// Root reports whether the category is a top-level folder.
func (c *Category) Root() bool {
	return c.ParentID == nil
}

// TreeNode is the nested shape a client submits for a whole-tree reorder.
// Only identity and nesting matter; names are managed by the rename
// operation and ignored here.
type TreeNode struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}
