// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the pricecheck API.
// Handlers are grouped by concern (public, admin, auth) and receive their
// dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pricecheck/internal/cache"
	"pricecheck/internal/catalog"
	"pricecheck/internal/quicksearch"
	"pricecheck/internal/store"
)

// Public groups the customer-facing browse and search handlers. It checks
// the Valkey overview cache before hitting the catalog service, and stores
// the serialized result on miss.
type Public struct {
	catalog       *catalog.Service
	categories    *store.CategoryStore
	products      *store.ProductStore
	overviewCache *cache.OverviewCache
}

// NewPublic creates a new Public handler group.
func NewPublic(svc *catalog.Service, categories *store.CategoryStore, products *store.ProductStore, overviewCache *cache.OverviewCache) *Public {
	return &Public{
		catalog:       svc,
		categories:    categories,
		products:      products,
		overviewCache: overviewCache,
	}
}

// Categories serves the home view: all categories ordered by name, each
// paired with its product count. Zero categories is an empty list, not an
// error.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.overviewCache.Get(ctx); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	overview, err := p.catalog.Overview()
	if err != nil {
		slog.Error("load categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	body, err := json.Marshal(map[string]any{"categories": overview})
	if err != nil {
		slog.Error("overview encode failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	p.overviewCache.Set(ctx, body)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// productView is a product plus its formatted price string.
type productView struct {
	Product      any    `json:"product"`
	PriceDisplay string `json:"price_display"`
}

// Category serves one category's product page. Query params: `page` selects
// a page (clamped; out-of-range values fall back to the nearest valid page
// already loaded), `q` filters the loaded page by name or SKU and forces
// the view back to page 1 so the filter always starts from the top.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := p.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	pager := catalog.NewPager(p.products)
	if err := pager.Open(id); err != nil {
		// Pager lands in a terminal empty state; render that rather than 500.
		slog.Error("load products failed", "category_id", id, "error", err)
	}

	query := r.URL.Query().Get("q")
	if query != "" {
		// A query change resets the view to page 1; the page param is
		// ignored while filtering.
		if err := pager.SetFilter(query); err != nil {
			slog.Error("filter reload failed", "category_id", id, "error", err)
		}
	} else if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			if err := pager.Goto(n); err != nil {
				slog.Error("page load failed", "category_id", id, "page", n, "error", err)
			}
		}
	}

	visible := pager.Visible()
	items := make([]productView, 0, len(visible))
	for i := range visible {
		items = append(items, productView{
			Product:      visible[i],
			PriceDisplay: catalog.FormatPriceRange(visible[i].Price, visible[i].PriceMax),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"category":    category,
		"products":    items,
		"page":        pager.Page(),
		"total":       pager.Total(),
		"total_pages": pager.TotalPages(),
		"query":       pager.Filter(),
	})
}

// SearchSKU serves the global quick-search: exact, case-insensitive SKU
// match across all categories, joined with the owning category's name.
// Empty input returns the cleared state without a store round trip.
func (p *Public) SearchSKU(w http.ResponseWriter, r *http.Request) {
	st := quicksearch.Do(p.products, r.URL.Query().Get("q"))
	if st.Err != "" {
		slog.Error("sku search failed", "query", st.Query, "error", st.Err)
		writeJSON(w, http.StatusInternalServerError, st)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
