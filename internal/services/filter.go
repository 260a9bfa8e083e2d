package services

import (
	"strings"

	"storefront-service/internal/models"
)

// DefaultVisibleCount is the initial size of the catalog window; each
// "show more" request grows it by the same amount.
const DefaultVisibleCount = 8

// FilterProducts derives the visible subset of the catalog from the
// facet selection. Pure and deterministic; an empty result is a valid
// outcome, not an error.
//
// Mode precedence, first match wins:
//  1. all-shoes mode with category "all" bypasses category and gender
//  2. new-products mode with category and gender both "all" additionally
//     requires IsNew
//  3. otherwise standard category/gender matching
//
// A mode whose gate condition fails (e.g. new-products with a narrowed
// category) falls through to standard filtering. The optional search
// term applies in every mode: case-insensitive substring over name or
// description, with blank terms imposing no filter.
func FilterProducts(products []models.Product, sel models.FilterSelection) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesSelection(p, sel) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesSelection(p models.Product, sel models.FilterSelection) bool {
	if sel.Mode == models.ModeAllShoes && sel.Category == "all" {
		return matchesSearch(p, sel.SearchTerm)
	}

	if sel.Mode == models.ModeNewProducts && sel.Category == "all" && sel.Gender == "all" {
		return p.IsNew && matchesSearch(p, sel.SearchTerm)
	}

	if sel.Category != "all" && p.Category != sel.Category {
		return false
	}
	if sel.Gender != "all" && p.Gender != sel.Gender {
		return false
	}
	return matchesSearch(p, sel.SearchTerm)
}

func matchesSearch(p models.Product, term string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

// Window tracks the paginated view over a filtered result set. The
// window resets to the default size whenever the filtered length or the
// search term changes, so a stale window never survives a changed
// result set.
type Window struct {
	visible    int
	lastTotal  int
	lastSearch string
	primed     bool
}

// NewWindow returns a window at the default size.
func NewWindow() *Window {
	return &Window{visible: DefaultVisibleCount}
}

// Apply slices the filtered set into the visible prefix and a preview of
// the next batch (up to DefaultVisibleCount items), resetting first if
// the result set changed.
func (w *Window) Apply(filtered []models.Product, searchTerm string) (visible, nextBatch []models.Product) {
	if !w.primed || len(filtered) != w.lastTotal || searchTerm != w.lastSearch {
		w.visible = DefaultVisibleCount
		w.lastTotal = len(filtered)
		w.lastSearch = searchTerm
		w.primed = true
	}

	count := w.visible
	if count > len(filtered) {
		count = len(filtered)
	}
	previewEnd := count + DefaultVisibleCount
	if previewEnd > len(filtered) {
		previewEnd = len(filtered)
	}
	return filtered[:count], filtered[count:previewEnd]
}

// ShowMore grows the window by one batch, capped at the current result
// length.
func (w *Window) ShowMore() {
	next := w.visible + DefaultVisibleCount
	if next > w.lastTotal {
		next = w.lastTotal
	}
	w.visible = next
}

// VisibleCount reports the current window size.
func (w *Window) VisibleCount() int {
	return w.visible
}
