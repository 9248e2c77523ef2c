package models

import "errors"

// Product is the canonical display shape of a catalog record. Source
// records arrive with unpredictable key names and go through
// catalog.Normalize before reaching this type.
type Product struct {
	ID            int64   `json:"id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    int64   `json:"category_id"`
	Status        string  `json:"status"`
}

// StatusActive is the upstream marker for a product available for sale.
const StatusActive = "activo"

// Available reports whether the product should be shown as purchasable.
func (p Product) Available() bool {
	return p.Status == StatusActive
}

// ProductImage belongs to exactly one product. URLImagen may be a remote
// URL or a data URI.
type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	URLImagen string `json:"url_imagen"`
}

// Category is referenced from products by id only; names are resolved
// against a separately fetched category list.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StoreBranding is per-visitor presentation state. It has no backend
// entity: it lives in the session store and feeds every page's chrome.
type StoreBranding struct {
	StoreName   string
	Logo        string
	HeaderColor string
	TemplateKey string
}

// Branding defaults, applied whenever a session has no stored value.
const (
	DefaultStoreName   = "Mi Tienda"
	DefaultHeaderColor = "#111827"
	DefaultTemplateKey = "StoreTemplateA"
)

// DefaultBranding returns the branding used before any customization.
func DefaultBranding() StoreBranding {
	return StoreBranding{
		StoreName:   DefaultStoreName,
		HeaderColor: DefaultHeaderColor,
		TemplateKey: DefaultTemplateKey,
	}
}

var (
	// ErrSessionExpired is returned for any upstream 401. The stored token
	// must be cleared and the authentication screen shown.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotFound is returned when a referenced product or category is
	// absent upstream.
	ErrNotFound = errors.New("not found")
)
