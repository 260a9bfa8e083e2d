package models

// FilterMode selects which filtering rule set applies to the catalog
// view. Exactly one mode is active at a time; the enum replaces the pair
// of boolean flags the storefront UI toggles so that conflicting modes
// are unrepresentable.
type FilterMode string

const (
	// ModeStandard filters by the selected category and gender facets.
	ModeStandard FilterMode = "standard"
	// ModeAllShoes bypasses category and gender entirely.
	ModeAllShoes FilterMode = "all_shoes"
	// ModeNewProducts additionally restricts to new arrivals.
	ModeNewProducts FilterMode = "new_products"
)

// ParseFilterMode maps a wire value to a FilterMode, defaulting to
// ModeStandard for anything unrecognized.
func ParseFilterMode(s string) FilterMode {
	switch FilterMode(s) {
	case ModeAllShoes:
		return ModeAllShoes
	case ModeNewProducts:
		return ModeNewProducts
	default:
		return ModeStandard
	}
}

// FilterSelection is the session-local facet state driving the catalog
// view. It is never persisted.
type FilterSelection struct {
	Category        string     `json:"category"`
	Gender          string     `json:"gender"`
	SearchTerm      string     `json:"searchTerm"`
	SearchSubmitted bool       `json:"searchSubmitted"`
	Mode            FilterMode `json:"mode"`
}

// NewFilterSelection returns the default selection: everything visible,
// standard mode.
func NewFilterSelection() FilterSelection {
	return FilterSelection{
		Category: "all",
		Gender:   "all",
		Mode:     ModeStandard,
	}
}

// SetMode is the single authoritative mode setter.
func (s *FilterSelection) SetMode(mode FilterMode) {
	s.Mode = mode
}

// SelectCategory applies a category pick the way the storefront's
// category bar does: choosing "all" enters all-shoes mode, anything else
// drops back to standard filtering.
func (s *FilterSelection) SelectCategory(category string) {
	s.Category = category
	if category == "all" {
		s.Mode = ModeAllShoes
	} else {
		s.Mode = ModeStandard
	}
}

// ToggleNewProducts flips new-products mode on or off.
func (s *FilterSelection) ToggleNewProducts() {
	if s.Mode == ModeNewProducts {
		s.Mode = ModeStandard
	} else {
		s.Mode = ModeNewProducts
	}
}

// Reset restores the default selection.
func (s *FilterSelection) Reset() {
	*s = NewFilterSelection()
}
