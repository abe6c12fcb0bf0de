package models

import "time"

// CatalogVersion is the only document version the store accepts; anything
// else is treated as an absent document.
const CatalogVersion = 1

// Badge variants allowed on a product.
const (
	BadgeDefault = "default"
	BadgeHot     = "hot"
)

// CatalogData is the single persisted catalog document.
type CatalogData struct {
	Version    int        `json:"version"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"categoryId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PriceLabel   string    `json:"priceLabel"`
	ImageURL     string    `json:"imageUrl"`
	ImageAlt     string    `json:"imageAlt"`
	BadgeText    *string   `json:"badgeText,omitempty"`
	BadgeVariant *string   `json:"badgeVariant,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductInput carries the fields an admin submits when creating a product.
type ProductInput struct {
	CategoryID   string `json:"categoryId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceLabel   string `json:"priceLabel"`
	ImageURL     string `json:"imageUrl"`
	ImageAlt     string `json:"imageAlt"`
	BadgeText    string `json:"badgeText"`
	BadgeVariant string `json:"badgeVariant"`
}

// PublicCatalog is the storefront-facing view: categories sorted by name,
// products limited to existing categories, newest first.
type PublicCatalog struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

// NewEmptyCatalog returns a fresh valid document with no entries.
func NewEmptyCatalog() *CatalogData {
	return &CatalogData{
		Version:    CatalogVersion,
		UpdatedAt:  time.Now(),
		Categories: []Category{},
		Products:   []Product{},
	}
}
