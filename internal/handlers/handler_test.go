// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. The tests live outside the handlers package so they can drive the
// real router and middleware chain; they are skipped when PostgreSQL or
// Valkey are unavailable.
package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"pricecheck/internal/cache"
	"pricecheck/internal/catalog"
	"pricecheck/internal/database"
	"pricecheck/internal/handlers"
	"pricecheck/internal/middleware"
	"pricecheck/internal/models"
	"pricecheck/internal/router"
	"pricecheck/internal/session"
	"pricecheck/internal/store"
)

// testAdminPassword is the shared password handler tests log in with.
const testAdminPassword = "handler-test-password"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pricecheck")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pricecheck")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "catalog:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests, routed
// through the real middleware chain.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Categories *store.CategoryStore
	Products   *store.ProductStore
	Cache      *cache.OverviewCache
	Router     http.Handler
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	categories := store.NewCategoryStore(db)
	products := store.NewProductStore(db)
	svc := catalog.NewService(categories, products)
	overviewCache := cache.NewOverviewCache(vk, time.Minute)
	sessions := session.NewStore(vk, false)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	// A generous login budget so tests never trip the limiter.
	limiter := middleware.NewRateLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)

	public := handlers.NewPublic(svc, categories, products, overviewCache)
	auth := handlers.NewAuth(sessions, hash)
	admin := handlers.NewAdmin(svc, categories, products, overviewCache, nil)

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Categories: categories,
		Products:   products,
		Cache:      overviewCache,
		Router:     router.New(sessions, public, auth, admin, limiter),
	}
}

// do performs a request against the router, JSON-encoding body if non-nil
// and attaching any cookies.
func (env *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewBuffer(raw)
	} else {
		payload = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// login authenticates with the shared password and returns the session cookie.
func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/admin/login",
		map[string]string{"password": testAdminPassword})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d, body %s", rec.Code, rec.Body.String())
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

// decodeBody unmarshals a JSON response body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// seedCategory inserts a throwaway category and registers its removal.
func seedCategory(t *testing.T, env *testEnv, name string) *models.Category {
	t.Helper()

	created, err := env.Categories.Create(&models.Category{Name: name, Icon: models.IconShoppingBag})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM products WHERE category_id = $1", created.ID)
		env.DB.Exec("DELETE FROM categories WHERE id = $1", created.ID)
	})
	return created
}

// seedProduct inserts a throwaway product; the owning category's cleanup
// removes it.
func seedProduct(t *testing.T, env *testEnv, categoryID uuid.UUID, name string, price int64) *models.Product {
	t.Helper()

	created, err := env.Products.Create(&models.Product{
		Name:       name,
		SKU:        fmt.Sprintf("HTST-%s", uuid.NewString()[:8]),
		Price:      decimal.NewFromInt(price),
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return created
}
