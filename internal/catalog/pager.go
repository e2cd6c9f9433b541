package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pricecheck/internal/models"
)

// PageSize is the fixed number of products per page.
const PageSize = 12

// State tracks where the pager is in its load cycle. All transitions are
// terminal: a failed load still lands in StateReady with an empty page,
// never stuck in StateLoading.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// PageSource loads one page of a category's products plus the category's
// total product count.
type PageSource interface {
	PageByCategory(categoryID uuid.UUID, offset, limit int) ([]models.Product, int, error)
}

// Pager drives the category product view: one name-ordered page of up to
// PageSize products, clamped page navigation, and a free-text filter that
// narrows the loaded page. Pager is single-goroutine, like the event-driven
// view it backs.
type Pager struct {
	source PageSource

	categoryID uuid.UUID
	state      State
	page       int
	total      int
	loaded     []models.Product
	filter     string
}

// NewPager creates an idle pager over the given source.
func NewPager(source PageSource) *Pager {
	return &Pager{source: source, state: StateIdle, page: 1}
}

// Open switches the pager to a category, clearing any filter and loading
// page 1.
func (p *Pager) Open(categoryID uuid.UUID) error {
	p.categoryID = categoryID
	p.filter = ""
	return p.load(1)
}

// Goto navigates to page n. Navigation outside [1, TotalPages] is a no-op,
// as is re-requesting the current page.
func (p *Pager) Goto(n int) error {
	if p.state == StateIdle {
		return nil
	}
	if n < 1 || n > p.TotalPages() || n == p.page {
		return nil
	}
	return p.load(n)
}

// Next advances one page; Prev goes back one. Both clamp at the bounds.
func (p *Pager) Next() error { return p.Goto(p.page + 1) }
func (p *Pager) Prev() error { return p.Goto(p.page - 1) }

// SetFilter updates the free-text query. Any change resets the view to
// page 1. The filter intentionally narrows the loaded page only; widening
// it to a server-side query across the category would change what the page
// numbers mean while a query is active.
func (p *Pager) SetFilter(query string) error {
	query = strings.TrimSpace(query)
	if query == p.filter {
		return nil
	}
	p.filter = query
	if p.state != StateIdle && p.page != 1 {
		return p.load(1)
	}
	return nil
}

// Visible returns the loaded page with the filter applied: rows whose name
// or SKU contains the query, case-insensitively.
func (p *Pager) Visible() []models.Product {
	if p.filter == "" {
		return p.loaded
	}
	needle := strings.ToUpper(p.filter)
	var out []models.Product
	for _, item := range p.loaded {
		if strings.Contains(strings.ToUpper(item.Name), needle) ||
			strings.Contains(strings.ToUpper(item.SKU), needle) {
			out = append(out, item)
		}
	}
	return out
}

// TotalPages returns ceil(total / PageSize).
func (p *Pager) TotalPages() int {
	return (p.total + PageSize - 1) / PageSize
}

// Page returns the current page number (1-based).
func (p *Pager) Page() int { return p.page }

// Total returns the category's total product count.
func (p *Pager) Total() int { return p.total }

// Filter returns the current free-text query.
func (p *Pager) Filter() string { return p.filter }

// State returns the pager's load state.
func (p *Pager) State() State { return p.state }

func (p *Pager) load(page int) error {
	p.state = StateLoading
	items, total, err := p.source.PageByCategory(p.categoryID, (page-1)*PageSize, PageSize)
	if err != nil {
		// Land in a terminal empty state; the view must never hang loading.
		p.loaded, p.total, p.page = nil, 0, 1
		p.state = StateReady
		return fmt.Errorf("load page %d: %w", page, err)
	}
	p.loaded, p.total, p.page = items, total, page
	p.state = StateReady
	return nil
}
