// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item belonging to exactly one category.
// SKU is matched case-insensitively; lookups normalize to uppercase first.
type Product struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	SKU        string              `json:"sku"`
	Price      decimal.Decimal     `json:"price"`
	PriceMax   decimal.NullDecimal `json:"price_max"`
	ImageURL   string              `json:"image_url"`
	CategoryID uuid.UUID           `json:"category_id"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// HasPriceRange reports whether PriceMax forms a genuine range above Price.
// A missing, equal, or lower upper bound collapses to a single value.
func (p *Product) HasPriceRange() bool {
	return p.PriceMax.Valid && p.PriceMax.Decimal.GreaterThan(p.Price)
}
