package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterMode(t *testing.T) {
	assert.Equal(t, ModeAllShoes, ParseFilterMode("all_shoes"))
	assert.Equal(t, ModeNewProducts, ParseFilterMode("new_products"))
	assert.Equal(t, ModeStandard, ParseFilterMode("standard"))
	assert.Equal(t, ModeStandard, ParseFilterMode(""))
	assert.Equal(t, ModeStandard, ParseFilterMode("bogus"))
}

func TestSelectCategoryDerivesMode(t *testing.T) {
	sel := NewFilterSelection()

	sel.SelectCategory("running")
	assert.Equal(t, "running", sel.Category)
	assert.Equal(t, ModeStandard, sel.Mode)

	sel.SelectCategory("all")
	assert.Equal(t, "all", sel.Category)
	assert.Equal(t, ModeAllShoes, sel.Mode)
}

func TestSetModeIsExclusive(t *testing.T) {
	sel := NewFilterSelection()

	sel.SetMode(ModeAllShoes)
	assert.Equal(t, ModeAllShoes, sel.Mode)

	// Picking another mode replaces the previous one outright.
	sel.SetMode(ModeNewProducts)
	assert.Equal(t, ModeNewProducts, sel.Mode)
}

func TestToggleNewProducts(t *testing.T) {
	sel := NewFilterSelection()

	sel.ToggleNewProducts()
	assert.Equal(t, ModeNewProducts, sel.Mode)

	sel.ToggleNewProducts()
	assert.Equal(t, ModeStandard, sel.Mode)

	// Toggling out of a different mode lands in new-products, not back
	// in the prior mode.
	sel.SetMode(ModeAllShoes)
	sel.ToggleNewProducts()
	assert.Equal(t, ModeNewProducts, sel.Mode)
}

func TestResetRestoresDefaults(t *testing.T) {
	sel := NewFilterSelection()
	sel.SelectCategory("basketball")
	sel.Gender = "women"
	sel.SearchTerm = "court"
	sel.SearchSubmitted = true
	sel.SetMode(ModeNewProducts)

	sel.Reset()
	assert.Equal(t, NewFilterSelection(), sel)
}
