// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Paper represents a research paper filed in the library.
// A paper belongs to at most one category; CategoryID is nil for
// papers in the unfiled inbox.
type Paper struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Authors    string    `json:"authors"`
	DOI        string    `json:"doi"`
	CategoryID *int64    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
