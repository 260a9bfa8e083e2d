package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-service/internal/models"
)

func testCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Air Zoom", Description: "Fast running shoe", Category: "running", Gender: "men", IsNew: true},
		{ID: 2, Name: "Court Vision", Description: "Classic basketball look", Category: "basketball", Gender: "men", IsNew: false},
		{ID: 3, Name: "Flex Trainer", Description: "Versatile gym shoe", Category: "training", Gender: "women", IsNew: true},
		{ID: 4, Name: "Street Runner", Description: "Everyday comfort", Category: "running", Gender: "women", IsNew: false},
		{ID: 5, Name: "Junior Dash", Description: "Durable kids runner", Category: "running", Gender: "kids", IsNew: true},
	}
}

func TestFilterProductsStandardMode(t *testing.T) {
	sel := models.NewFilterSelection()
	sel.Category = "running"

	filtered := FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 3)
	for _, p := range filtered {
		assert.Equal(t, "running", p.Category)
	}

	sel.Gender = "women"
	filtered = FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 1)
	assert.Equal(t, int64(4), filtered[0].ID)
}

func TestFilterProductsAllShoesBypassesFacets(t *testing.T) {
	sel := models.NewFilterSelection()
	sel.Mode = models.ModeAllShoes
	sel.Gender = "women"

	// Gender is ignored while category stays "all".
	filtered := FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 5)
}

func TestFilterProductsAllShoesFallsThroughOnNarrowedCategory(t *testing.T) {
	sel := models.NewFilterSelection()
	sel.Mode = models.ModeAllShoes
	sel.Category = "running"

	filtered := FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 3)
}

func TestFilterProductsNewProductsMode(t *testing.T) {
	sel := models.NewFilterSelection()
	sel.Mode = models.ModeNewProducts

	filtered := FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 3)
	for _, p := range filtered {
		assert.True(t, p.IsNew)
	}
}

func TestFilterProductsNewProductsFallsThroughOnNarrowedFacet(t *testing.T) {
	sel := models.NewFilterSelection()
	sel.Mode = models.ModeNewProducts
	sel.Gender = "men"

	// With a narrowed gender the IsNew gate no longer applies.
	filtered := FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.Equal(t, "men", p.Gender)
	}
}

func TestFilterProductsSearch(t *testing.T) {
	sel := models.NewFilterSelection()
	sel.SearchTerm = "RUNNING"

	filtered := FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)

	sel.SearchTerm = "shoe"
	filtered = FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 2)

	sel.SearchTerm = "   "
	filtered = FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 5)
}

func TestFilterProductsSearchAppliesInEveryMode(t *testing.T) {
	sel := models.NewFilterSelection()
	sel.Mode = models.ModeAllShoes
	sel.SearchTerm = "dash"

	filtered := FilterProducts(testCatalog(), sel)
	assert.Len(t, filtered, 1)
	assert.Equal(t, int64(5), filtered[0].ID)
}

func TestFilterProductsEmptyResultIsNotAnError(t *testing.T) {
	sel := models.NewFilterSelection()
	sel.Category = "sandals"

	filtered := FilterProducts(testCatalog(), sel)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func bigCatalog(n int) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, models.Product{ID: int64(i), Name: fmt.Sprintf("Shoe %d", i), Category: "running", Gender: "men"})
	}
	return products
}

func TestWindowDefaultSlice(t *testing.T) {
	w := NewWindow()
	visible, nextBatch := w.Apply(bigCatalog(20), "")

	assert.Len(t, visible, 8)
	assert.Len(t, nextBatch, 8)
	assert.Equal(t, int64(1), visible[0].ID)
	assert.Equal(t, int64(9), nextBatch[0].ID)
}

func TestWindowShowMoreGrowsAndCaps(t *testing.T) {
	w := NewWindow()
	catalog := bigCatalog(12)

	w.Apply(catalog, "")
	w.ShowMore()
	visible, nextBatch := w.Apply(catalog, "")

	assert.Len(t, visible, 12)
	assert.Empty(t, nextBatch)

	// Another show-more cannot grow past the result length.
	w.ShowMore()
	visible, _ = w.Apply(catalog, "")
	assert.Len(t, visible, 12)
}

func TestWindowResetsWhenResultSetChanges(t *testing.T) {
	w := NewWindow()
	catalog := bigCatalog(30)

	w.Apply(catalog, "")
	w.ShowMore()
	visible, _ := w.Apply(catalog, "")
	assert.Len(t, visible, 16)

	// A different filtered length snaps back to the default window.
	visible, _ = w.Apply(bigCatalog(20), "")
	assert.Len(t, visible, 8)
}

func TestWindowResetsWhenSearchTermChanges(t *testing.T) {
	w := NewWindow()
	catalog := bigCatalog(30)

	w.Apply(catalog, "")
	w.ShowMore()
	visible, _ := w.Apply(catalog, "")
	assert.Len(t, visible, 16)

	// Same length, different term: still a reset.
	visible, _ = w.Apply(catalog, "zoom")
	assert.Len(t, visible, 8)
}

func TestWindowShortResultSet(t *testing.T) {
	w := NewWindow()
	visible, nextBatch := w.Apply(bigCatalog(3), "")

	assert.Len(t, visible, 3)
	assert.Empty(t, nextBatch)
}
