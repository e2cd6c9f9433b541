// Package catalog implements the browsing core: the category overview with
// per-category product counts, paginated product listing with a page-local
// incremental filter, and localized price formatting.
package catalog

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"pricecheck/internal/models"
)

// CategorySource lists categories in display order.
type CategorySource interface {
	List() ([]models.Category, error)
}

// CountSource produces product counts for all categories in one round trip.
type CountSource interface {
	CountAllByCategory() (map[uuid.UUID]int, error)
}

// CategoryOverview pairs a category with its product count for the home view.
type CategoryOverview struct {
	models.Category
	ProductCount int `json:"product_count"`
}

// Service exposes the read-side browsing operations.
type Service struct {
	categories CategorySource
	counts     CountSource
}

// NewService creates a catalog service over the given sources.
func NewService(categories CategorySource, counts CountSource) *Service {
	return &Service{categories: categories, counts: counts}
}

// Overview returns all categories ordered by name, each paired with its
// product count. Categories without products get a count of zero. A failed
// count query degrades to zero counts rather than failing the whole view;
// a failed category fetch is returned to the caller.
func (s *Service) Overview() ([]CategoryOverview, error) {
	categories, err := s.categories.List()
	if err != nil {
		return nil, fmt.Errorf("catalog overview: %w", err)
	}

	counts, err := s.counts.CountAllByCategory()
	if err != nil {
		slog.Error("product counts unavailable, rendering zeros", "error", err)
		counts = map[uuid.UUID]int{}
	}

	overview := make([]CategoryOverview, 0, len(categories))
	for _, c := range categories {
		overview = append(overview, CategoryOverview{
			Category:     c,
			ProductCount: counts[c.ID],
		})
	}
	return overview, nil
}
