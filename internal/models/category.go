// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryIcon selects the presentation glyph shown for a category.
// The set is closed; anything else parses to the shopping-bag fallback.
type CategoryIcon string

const (
	IconBackpack    CategoryIcon = "backpack"
	IconShoppingBag CategoryIcon = "shopping-bag"
	IconBriefcase   CategoryIcon = "briefcase"
)

// ParseIcon maps a stored icon string onto the closed icon set.
// Unknown values fall back to shopping-bag rather than failing.
func ParseIcon(s string) CategoryIcon {
	switch CategoryIcon(s) {
	case IconBackpack, IconShoppingBag, IconBriefcase:
		return CategoryIcon(s)
	default:
		return IconShoppingBag
	}
}

// Category groups zero or more products.
type Category struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Icon      CategoryIcon `json:"icon"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
