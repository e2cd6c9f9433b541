package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: three
// categories and a handful of products with SKUs. It is a no-op when any
// category already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	categories := []struct {
		name string
		icon string
		rows []struct {
			name     string
			sku      string
			price    string
			priceMax string // empty = no range
		}
	}{
		{
			name: "Backpacks", icon: "backpack",
			rows: []struct{ name, sku, price, priceMax string }{
				{"Trekker 40L", "ROLEX-001", "1499.00", ""},
				{"Campus Daypack", "ROLEX-002", "899.00", "1099.00"},
			},
		},
		{
			name: "Shopping Bags", icon: "shopping-bag",
			rows: []struct{ name, sku, price, priceMax string }{
				{"Jute Tote", "ROLEX-101", "249.00", ""},
				{"Canvas Carryall", "ROLEX-102", "399.50", ""},
			},
		},
		{
			name: "Briefcases", icon: "briefcase",
			rows: []struct{ name, sku, price, priceMax string }{
				{"Executive Slim", "ROLEX-201", "2999.00", "3499.00"},
			},
		},
	}

	for _, c := range categories {
		var categoryID string
		err := db.QueryRow(`
			INSERT INTO categories (name, icon) VALUES ($1, $2) RETURNING id
		`, c.name, c.icon).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}

		for _, p := range c.rows {
			var priceMax any
			if p.priceMax != "" {
				priceMax = p.priceMax
			}
			_, err := db.Exec(`
				INSERT INTO products (name, sku, price, price_max, category_id)
				VALUES ($1, $2, $3, $4, $5)
			`, p.name, p.sku, p.price, priceMax, categoryID)
			if err != nil {
				return fmt.Errorf("seed insert product %q: %w", p.sku, err)
			}
		}
	}

	slog.Info("database seeded with sample catalog", "categories", len(categories))
	return nil
}
