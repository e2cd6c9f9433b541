// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pricecheck/internal/cache"
	"pricecheck/internal/catalog"
	"pricecheck/internal/imaging"
	"pricecheck/internal/models"
	"pricecheck/internal/storage"
	"pricecheck/internal/store"
)

// maxUploadBytes caps product image uploads before downscaling.
const maxUploadBytes = 10 << 20

// Admin groups the management handlers for categories and products.
// storageClient may be nil; image uploads then embed a data URI instead.
type Admin struct {
	catalog       *catalog.Service
	categories    *store.CategoryStore
	products      *store.ProductStore
	overviewCache *cache.OverviewCache
	storageClient *storage.Client
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(svc *catalog.Service, categories *store.CategoryStore, products *store.ProductStore, overviewCache *cache.OverviewCache, storageClient *storage.Client) *Admin {
	return &Admin{
		catalog:       svc,
		categories:    categories,
		products:      products,
		overviewCache: overviewCache,
		storageClient: storageClient,
	}
}

// --- Categories CRUD ---

type categoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CategoriesList returns all categories with their product counts, the
// shape the manage-categories view renders.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	overview, err := a.catalog.Overview()
	if err != nil {
		slog.Error("admin list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": overview})
}

// CategoryCreate inserts a new category. Unknown icons fall back to the
// default glyph rather than failing.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCategory(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.categories.Create(&models.Category{
		Name: req.Name,
		Icon: models.ParseIcon(req.Icon),
	})
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	a.overviewCache.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate modifies a category's name and icon.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateCategory(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	category.Name = req.Name
	category.Icon = models.ParseIcon(req.Icon)
	if err := a.categories.Update(category); err != nil {
		slog.Error("update category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	a.overviewCache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, category)
}

// CategoryDelete removes a category. Categories that still have products
// are refused with a blocking message before any delete statement is issued.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	count, err := a.products.CountByCategory(id)
	if err != nil {
		slog.Error("count products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to check category")
		return
	}
	if count > 0 {
		writeError(w, http.StatusConflict,
			"Cannot delete category with products. Please delete all products first.")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	a.overviewCache.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- Products CRUD ---

type productRequest struct {
	Name       string              `json:"name"`
	SKU        string              `json:"sku"`
	Price      decimal.Decimal     `json:"price"`
	PriceMax   decimal.NullDecimal `json:"price_max"`
	ImageURL   string              `json:"image_url"`
	CategoryID uuid.UUID           `json:"category_id"`
}

// ProductsList returns all products, newest first, for the admin table.
func (a *Admin) ProductsList(w http.ResponseWriter, r *http.Request) {
	products, err := a.products.List()
	if err != nil {
		slog.Error("admin list products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// ProductCreate inserts a new product after checking the target category exists.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	req, msg := a.decodeProduct(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.products.Create(&models.Product{
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		PriceMax:   req.PriceMax,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		slog.Error("create product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	a.overviewCache.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// ProductUpdate modifies an existing product.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("find product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	req, msg := a.decodeProduct(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	oldImageURL := product.ImageURL

	product.Name = req.Name
	product.SKU = req.SKU
	product.Price = req.Price
	product.PriceMax = req.PriceMax
	product.ImageURL = req.ImageURL
	product.CategoryID = req.CategoryID
	if err := a.products.Update(product); err != nil {
		slog.Error("update product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	if oldImageURL != product.ImageURL {
		a.removeStoredImage(r.Context(), oldImageURL)
	}
	a.overviewCache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, product)
}

// ProductDelete removes a product, along with its stored image object when
// one exists. Deleting an already-gone product stays a 204.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("find product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	if product == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := a.products.Delete(id); err != nil {
		slog.Error("delete product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	a.removeStoredImage(r.Context(), product.ImageURL)
	a.overviewCache.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ProductImage accepts a multipart image upload, downscales it, and returns
// the URL to store on the product: an S3 object URL when storage is
// configured, otherwise an embedded data URI.
func (a *Admin) ProductImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	scaled, err := imaging.Downscale(raw)
	if err != nil {
		slog.Error("image downscale failed", "error", err)
		writeError(w, http.StatusBadRequest, "unsupported or corrupt image")
		return
	}

	var url string
	if a.storageClient != nil {
		key := fmt.Sprintf("products/%s.jpg", uuid.NewString())
		if err := a.storageClient.Upload(r.Context(), key, "image/jpeg",
			bytes.NewReader(scaled), int64(len(scaled))); err != nil {
			slog.Error("image upload failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to store image")
			return
		}
		url = a.storageClient.ObjectURL(key)
	} else {
		url = imaging.DataURI(scaled)
	}

	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}

// removeStoredImage deletes a replaced or orphaned product image from object
// storage, best effort. Data-URI images carry their bytes inline and have
// nothing to remove.
func (a *Admin) removeStoredImage(ctx context.Context, imageURL string) {
	if a.storageClient == nil || imageURL == "" {
		return
	}
	key, ok := a.storageClient.KeyFromURL(imageURL)
	if !ok {
		return
	}
	if err := a.storageClient.Delete(ctx, key); err != nil {
		slog.Warn("stale image delete failed", "key", key, "error", err)
	}
}

// decodeProduct parses and validates a product payload, also checking the
// referenced category exists.
func (a *Admin) decodeProduct(r *http.Request) (*productRequest, string) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "invalid request body"
	}
	if msg := validateProduct(req.Name, req.SKU, req.Price, req.ImageURL); msg != "" {
		return nil, msg
	}
	if req.CategoryID == uuid.Nil {
		return nil, "Category is required."
	}

	category, err := a.categories.FindByID(req.CategoryID)
	if err != nil {
		slog.Error("find category failed", "error", err)
		return nil, "failed to check category"
	}
	if category == nil {
		return nil, "Unknown category."
	}
	return &req, ""
}
