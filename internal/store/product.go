// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pricecheck/internal/models"
)

// productColumns is the canonical select list for product queries.
const productColumns = `id, name, sku, price, price_max, image_url, category_id, created_at, updated_at`

// ProductStore handles all product-related database operations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// scanProduct reads one product row from a scanner.
func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Price, &p.PriceMax,
		&p.ImageURL, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// List returns all products, newest first. Used by the admin table.
func (s *ProductStore) List() ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// PageByCategory returns one name-ordered page of a category's products
// plus the total product count for that category.
func (s *ProductStore) PageByCategory(categoryID uuid.UUID, offset, limit int) ([]models.Product, int, error) {
	var total int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM products WHERE category_id = $1
	`, categoryID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count products in category: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT `+productColumns+`
		FROM products
		WHERE category_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`, categoryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("page products by category: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// CountByCategory returns the number of products in one category.
func (s *ProductStore) CountByCategory(categoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM products WHERE category_id = $1
	`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// CountAllByCategory returns product counts for every category in a single
// round trip. Categories with no products are simply absent from the map.
func (s *ProductStore) CountAllByCategory() (map[uuid.UUID]int, error) {
	rows, err := s.db.Query(`
		SELECT category_id, COUNT(*) FROM products GROUP BY category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("count products by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan product count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// SKUMatch is a product joined with its owning category's name, the shape
// the quick-search panel renders.
type SKUMatch struct {
	Product      models.Product `json:"product"`
	CategoryName string         `json:"category_name"`
}

// FindBySKU retrieves the product whose SKU matches the given value
// case-insensitively. The caller normalizes input to uppercase; the query
// compares against UPPER(sku) so stored casing does not matter.
// Returns nil if no product matches.
func (s *ProductStore) FindBySKU(sku string) (*SKUMatch, error) {
	m := &SKUMatch{}
	err := s.db.QueryRow(`
		SELECT p.id, p.name, p.sku, p.price, p.price_max, p.image_url,
		       p.category_id, p.created_at, p.updated_at, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE UPPER(p.sku) = $1
	`, sku).Scan(
		&m.Product.ID, &m.Product.Name, &m.Product.SKU, &m.Product.Price,
		&m.Product.PriceMax, &m.Product.ImageURL, &m.Product.CategoryID,
		&m.Product.CreatedAt, &m.Product.UpdatedAt, &m.CategoryName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by sku: %w", err)
	}
	return m, nil
}

// FindByID retrieves a product by its UUID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(`
		SELECT `+productColumns+` FROM products WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return &p, nil
}

// Create inserts a new product and returns it with the generated ID.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	result, err := scanProduct(s.db.QueryRow(`
		INSERT INTO products (name, sku, price, price_max, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns+`
	`, p.Name, p.SKU, p.Price, p.PriceMax, p.ImageURL, p.CategoryID))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &result, nil
}

// Update modifies an existing product.
func (s *ProductStore) Update(p *models.Product) error {
	_, err := s.db.Exec(`
		UPDATE products SET
			name = $1, sku = $2, price = $3, price_max = $4,
			image_url = $5, category_id = $6, updated_at = NOW()
		WHERE id = $7
	`, p.Name, p.SKU, p.Price, p.PriceMax, p.ImageURL, p.CategoryID, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product by ID.
func (s *ProductStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
