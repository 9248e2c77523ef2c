package render

import "storefront-web/internal/models"

// LoginPage backs the authentication screen. Error is always the one
// generic message; no failure detail is leaked.
type LoginPage struct {
	Chrome   Chrome
	Username string
	Error    string
	Notice   string
}

// RegisterPage backs the registration form. Errors is keyed by field so
// each rule surfaces independently next to its input.
type RegisterPage struct {
	Chrome Chrome
	Values map[string]string
	Errors map[string]string
	Notice string
}

// DetailPage backs the product detail view.
type DetailPage struct {
	Chrome  Chrome
	Product ProductView
	Images  []string
	Related []ProductView
	Notice  string
}

// AdminProductsPage backs the admin product table.
type AdminProductsPage struct {
	Chrome     Chrome
	Products   []ProductView
	Categories []models.Category
	Query      string
	Page       int
	PageCount  int
	Total      int
	Pager      []PagerItem
	Notice     string
	Error      string
}

// ProductFormPage backs both the create and edit product forms. On
// failure the submitted values are preserved for retry.
type ProductFormPage struct {
	Chrome     Chrome
	Title      string
	Action     string
	IsEdit     bool
	ProductID  int64
	Values     map[string]string
	Errors     map[string]string
	Categories []models.Category
	Images     []models.ProductImage
	Error      string
	Notice     string
}

// CustomizePage backs the store customization screen with its template
// gallery and live preview.
type CustomizePage struct {
	Chrome   Chrome
	Branding models.StoreBranding
	Entries  []Entry
	Selected string
	Preview  StorePage
	Notice   string
	Error    string
}
