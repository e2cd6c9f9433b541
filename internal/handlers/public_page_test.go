// public_page_test.go covers the public browsing surface: the category
// overview, paginated category pages with the page-local filter, and the
// SKU quick-search endpoint. Tests exercise real database and Valkey
// connections; they are skipped when those services are unavailable.
package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// categoryPage mirrors the category endpoint's response body.
type categoryPage struct {
	Products []struct {
		Product struct {
			Name string `json:"name"`
			SKU  string `json:"sku"`
		} `json:"product"`
		PriceDisplay string `json:"price_display"`
	} `json:"products"`
	Page       int    `json:"page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Query      string `json:"query"`
}

func TestCategoriesOverview(t *testing.T) {
	env := newTestEnv(t)

	cat := seedCategory(t, env, "Overview Cat "+uuid.NewString()[:8])
	seedProduct(t, env, cat.ID, "Overview Product", 500)
	env.Cache.Invalidate(context.Background())

	rec := env.do(t, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var body struct {
		Categories []struct {
			Name         string `json:"name"`
			ProductCount int    `json:"product_count"`
		} `json:"categories"`
	}
	decodeBody(t, rec, &body)

	found := false
	for _, c := range body.Categories {
		if c.Name == cat.Name {
			found = true
			if c.ProductCount != 1 {
				t.Errorf("product count: got %d, want 1", c.ProductCount)
			}
		}
	}
	if !found {
		t.Errorf("seeded category %q missing from overview", cat.Name)
	}
}

func TestCategoryPagePagination(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "Paging Cat "+uuid.NewString()[:8])

	// 13 products: one full page of 12 plus a second page of 1.
	for i := 1; i <= 13; i++ {
		seedProduct(t, env, cat.ID, fmt.Sprintf("Item %02d", i), 100)
	}

	base := "/api/categories/" + cat.ID.String()

	rec := env.do(t, http.MethodGet, base, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var page categoryPage
	decodeBody(t, rec, &page)

	if page.Total != 13 || page.TotalPages != 2 || page.Page != 1 {
		t.Fatalf("got total=%d pages=%d page=%d, want 13/2/1", page.Total, page.TotalPages, page.Page)
	}
	if len(page.Products) != 12 {
		t.Fatalf("page size: got %d, want 12", len(page.Products))
	}
	if page.Products[0].Product.Name != "Item 01" {
		t.Errorf("first item: got %q", page.Products[0].Product.Name)
	}

	// Second page holds the remainder.
	rec = env.do(t, http.MethodGet, base+"?page=2", nil)
	decodeBody(t, rec, &page)
	if page.Page != 2 || len(page.Products) != 1 {
		t.Errorf("page 2: got page=%d with %d items", page.Page, len(page.Products))
	}
	if page.Products[0].Product.Name != "Item 13" {
		t.Errorf("page 2 item: got %q", page.Products[0].Product.Name)
	}

	// Out-of-range page requests are ignored; the view stays on page 1.
	for _, raw := range []string{"0", "-3", "99"} {
		rec = env.do(t, http.MethodGet, base+"?page="+raw, nil)
		decodeBody(t, rec, &page)
		if page.Page != 1 {
			t.Errorf("page=%s: got page %d, want 1", raw, page.Page)
		}
	}
}

func TestCategoryPageFilter(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "Filter Cat "+uuid.NewString()[:8])

	seedProduct(t, env, cat.ID, "Blue Backpack", 100)
	seedProduct(t, env, cat.ID, "Red Backpack", 100)
	seedProduct(t, env, cat.ID, "Lunch Box", 100)

	base := "/api/categories/" + cat.ID.String()

	// The filter narrows the loaded page by name, case-insensitively.
	rec := env.do(t, http.MethodGet, base+"?q=backpack", nil)
	var page categoryPage
	decodeBody(t, rec, &page)

	if page.Query != "backpack" {
		t.Errorf("query echo: got %q", page.Query)
	}
	if len(page.Products) != 2 {
		t.Fatalf("filtered items: got %d, want 2", len(page.Products))
	}
	for _, item := range page.Products {
		if !strings.Contains(item.Product.Name, "Backpack") {
			t.Errorf("unexpected item %q in filtered view", item.Product.Name)
		}
	}

	// The total still reflects the whole category, not the filtered view.
	if page.Total != 3 {
		t.Errorf("total: got %d, want 3", page.Total)
	}

	// Filtering also matches against SKUs.
	sku := page.Products[0].Product.SKU
	rec = env.do(t, http.MethodGet, base+"?q="+url.QueryEscape(strings.ToLower(sku)), nil)
	decodeBody(t, rec, &page)
	if len(page.Products) != 1 || page.Products[0].Product.SKU != sku {
		t.Errorf("SKU filter: got %d items", len(page.Products))
	}
}

func TestCategoryPageErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/categories/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id: got %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/categories/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rec.Code)
	}
}

func TestSearchSKUEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env, "Search Cat "+uuid.NewString()[:8])
	p := seedProduct(t, env, cat.ID, "Findable", 250)

	// Lowercase input matches the stored SKU exactly after normalization.
	rec := env.do(t, http.MethodGet, "/api/search/sku?q="+url.QueryEscape(strings.ToLower(p.SKU)), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var st struct {
		Result *struct {
			Product struct {
				SKU string `json:"sku"`
			} `json:"product"`
			CategoryName string `json:"category_name"`
		} `json:"result"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &st)
	if st.Result == nil {
		t.Fatalf("expected a match, body %s", rec.Body.String())
	}
	if st.Result.Product.SKU != p.SKU {
		t.Errorf("sku: got %q, want %q", st.Result.Product.SKU, p.SKU)
	}
	if st.Result.CategoryName != cat.Name {
		t.Errorf("category: got %q, want %q", st.Result.CategoryName, cat.Name)
	}

	// Unknown SKUs get the informational message, still 200.
	rec = env.do(t, http.MethodGet, "/api/search/sku?q=NO-SUCH-"+uuid.NewString()[:8], nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	decodeBody(t, rec, &st)
	if st.Result != nil || st.Message == "" {
		t.Errorf("expected no-match message, body %s", rec.Body.String())
	}
}
