package models

// Product is the canonical catalog record every storefront component
// operates on. Upstream records are mapped into this shape by the
// normalizer; after that point no heterogeneous fields remain.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Gender      string  `json:"gender"`
	Rating      float64 `json:"rating"`
	IsNew       bool    `json:"isNew"`
	Image       string  `json:"image"`
	Slug        string  `json:"slug,omitempty"`
}

// RawProduct is a product record as the upstream catalog API returns it.
// Field types are deliberately loose: price may arrive as a number or a
// formatted currency string, category as a string or a nested object,
// and the new-product flag under either of two names. The normalizer is
// the only consumer.
type RawProduct struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       interface{} `json:"price"`
	Category    interface{} `json:"category"`
	Gender      interface{} `json:"gender"`
	Rating      interface{} `json:"rating"`
	IsNew       interface{} `json:"isNew"`
	IsNewAlt    interface{} `json:"is_new"`
	ImgURL      string      `json:"img_url"`
	Image       string      `json:"image"`
	Slug        string      `json:"slug"`
}

// Category is a catalog category as exposed by the upstream API.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
