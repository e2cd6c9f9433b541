// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"pricecheck/internal/database"
	"pricecheck/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pricecheck")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pricecheck")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testCategory inserts a throwaway category and registers its removal.
func testCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()

	s := NewCategoryStore(db)
	created, err := s.Create(&models.Category{Name: name, Icon: models.IconShoppingBag})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM products WHERE category_id = $1", created.ID)
		db.Exec("DELETE FROM categories WHERE id = $1", created.ID)
	})
	return created
}

// testProduct inserts a throwaway product into the given category. The
// category cleanup removes it, so no separate cleanup is registered.
func testProduct(t *testing.T, db *sql.DB, categoryID uuid.UUID, name, sku string, price int64) *models.Product {
	t.Helper()

	s := NewProductStore(db)
	created, err := s.Create(&models.Product{
		Name:       name,
		SKU:        sku,
		Price:      decimal.NewFromInt(price),
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("create test product: %v", err)
	}
	return created
}

// uniqueSKU returns a SKU that will not collide with seeded or parallel data.
func uniqueSKU(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
