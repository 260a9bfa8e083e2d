package services

import (
	"math"
	"strconv"
	"strings"

	"storefront-service/internal/models"
)

var knownGenders = map[string]bool{
	"men":    true,
	"women":  true,
	"kids":   true,
	"unisex": true,
	"all":    true,
}

// NormalizeProduct maps a raw upstream record into the canonical Product
// shape. It is total: malformed fields are replaced with defaults, never
// surfaced as errors.
func NormalizeProduct(raw models.RawProduct) models.Product {
	image := raw.ImgURL
	if image == "" {
		image = raw.Image
	}

	return models.Product{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Price:       parsePrice(raw.Price),
		Category:    parseCategory(raw.Category),
		Gender:      parseGender(raw.Gender),
		Rating:      parseRating(raw.Rating),
		IsNew:       parseIsNew(raw.IsNew, raw.IsNewAlt),
		Image:       ResolveImageURL(image),
		Slug:        raw.Slug,
	}
}

// NormalizeProducts normalizes a whole catalog page.
func NormalizeProducts(raw []models.RawProduct) []models.Product {
	products := make([]models.Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, NormalizeProduct(r))
	}
	return products
}

// parsePrice accepts a plain number or a formatted currency string such
// as "Rp 1.500.000"; all non-digit characters are stripped before
// parsing. Anything else is 0.
func parsePrice(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		var digits strings.Builder
		for _, r := range val {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		if digits.Len() == 0 {
			return 0
		}
		num, err := strconv.ParseFloat(digits.String(), 64)
		if err != nil {
			return 0
		}
		return num
	default:
		return 0
	}
}

// parseCategory accepts a plain string or a nested object with a "name"
// field; keys are case-folded to lowercase, default "all".
func parseCategory(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return "all"
		}
		return strings.ToLower(val)
	case map[string]interface{}:
		if name, ok := val["name"].(string); ok && name != "" {
			return strings.ToLower(name)
		}
		return "all"
	default:
		return "all"
	}
}

// parseGender lowercases known gender keys and defaults everything else
// to "all".
func parseGender(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return "all"
	}
	g := strings.ToLower(s)
	if !knownGenders[g] {
		return "all"
	}
	return g
}

// parseRating coerces any numeric-ish value; absent, non-finite or
// non-positive ratings fall back to 5.
func parseRating(v interface{}) float64 {
	var num float64
	switch val := v.(type) {
	case float64:
		num = val
	case int:
		num = float64(val)
	case int64:
		num = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 5
		}
		num = parsed
	default:
		return 5
	}
	if math.IsNaN(num) || math.IsInf(num, 0) || num <= 0 {
		return 5
	}
	return num
}

// parseIsNew reads the flag from either of its two upstream field names.
func parseIsNew(primary, alt interface{}) bool {
	if b, ok := primary.(bool); ok {
		return b
	}
	if b, ok := alt.(bool); ok {
		return b
	}
	return false
}

// ResolveImageURL turns a raw catalog image path into a display URL.
// Full URLs and absolute paths pass through; upload-disk paths get the
// storage prefix; everything else becomes root-relative.
func ResolveImageURL(imgPath string) string {
	path := strings.TrimSpace(imgPath)
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return path
	}
	if strings.HasPrefix(path, "products/") {
		return "/storage/" + path
	}
	if strings.HasPrefix(path, "storage/") {
		return "/" + path
	}
	return "/" + path
}
