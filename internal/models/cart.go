package models

// LineKey identifies a line item: product plus the selected size. Two
// lines with the same key must never coexist in a collection.
type LineKey struct {
	ProductID int64
	Size      string
}

// CartLine is one entry in the cart. Product fields are a snapshot taken
// at add time, so later catalog changes don't retroactively alter the
// cart display.
type CartLine struct {
	Product
	SelectedSize string `json:"selectedSize,omitempty"`
	Quantity     int    `json:"quantity"`
}

// Key returns the line's identity key.
func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ID, Size: l.SelectedSize}
}

// CheckoutItem is a line item staged for checkout. It shares the cart
// line shape but lives in a separate collection; IsDirectCheckout marks
// items that entered through the "buy now" path rather than a cart
// transfer.
type CheckoutItem struct {
	CartLine
	IsDirectCheckout bool `json:"isDirectCheckout,omitempty"`
}

// TotalItems sums line quantities.
func TotalItems(lines []CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums price x quantity across lines.
func TotalPrice(lines []CartLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// CheckoutTotalItems sums quantities across staged items.
func CheckoutTotalItems(items []CheckoutItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// CheckoutTotalPrice sums price x quantity across staged items.
func CheckoutTotalPrice(items []CheckoutItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
