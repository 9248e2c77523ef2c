package render

import (
	"fmt"
	"strings"
	"time"

	"storefront-web/internal/models"
)

// UnknownCategory is shown when a product's category id cannot be
// resolved against the fetched category list.
const UnknownCategory = "Sin categoría"

// ProductView is a Product prepared for a page template: image resolved
// or absent, price formatted or replaced by a consult affordance,
// category name resolved or the placeholder.
type ProductView struct {
	ID           int64
	Name         string
	SKU          string
	Description  string
	HasPrice     bool
	PriceDisplay string
	Stock        int
	CategoryName string
	Available    bool
	ImageURL     string
}

// BuildProductView resolves one product for rendering. imageURL may be
// empty (templates render a neutral placeholder block).
func BuildProductView(p models.Product, imageURL string, categoryNames map[int64]string) ProductView {
	name, ok := categoryNames[p.CategoryID]
	if !ok || name == "" {
		name = UnknownCategory
	}
	view := ProductView{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		Stock:        p.StockQuantity,
		CategoryName: name,
		Available:    p.Available(),
		ImageURL:     imageURL,
	}
	if p.Price > 0 {
		view.HasPrice = true
		view.PriceDisplay = "$" + FormatMoney(p.Price)
	}
	return view
}

// FormatMoney renders a price with dot thousand separators and no
// decimals, the way the storefront displays Chilean pesos.
func FormatMoney(amount float64) string {
	if amount < 0 {
		amount = 0
	}
	digits := fmt.Sprintf("%.0f", amount)

	var b strings.Builder
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// PagerItem is one slot in the windowed page selector.
type PagerItem struct {
	Page     int
	Label    string
	Current  bool
	Ellipsis bool
}

const maxPagerSlots = 5

// BuildPager produces at most five numbered slots around the current
// page, with ellipsis gaps toward the edges.
func BuildPager(current, total int) []PagerItem {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	var pages []int
	ellipsis := map[int]bool{}

	switch {
	case total <= maxPagerSlots:
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
	case current <= 3:
		pages = []int{1, 2, 3, 4, total}
		ellipsis[4] = true
	case current >= total-2:
		pages = []int{1, total - 3, total - 2, total - 1, total}
		ellipsis[1] = true
	default:
		pages = []int{1, current - 1, current, current + 1, total}
		ellipsis[1] = true
		ellipsis[4] = true
	}

	items := make([]PagerItem, 0, len(pages)*2)
	for i, p := range pages {
		if ellipsis[i] && i > 0 && p != pages[i-1]+1 {
			items = append(items, PagerItem{Label: "…", Ellipsis: true})
		}
		items = append(items, PagerItem{
			Page:    p,
			Label:   fmt.Sprintf("%d", p),
			Current: p == current,
		})
	}
	return items
}

// Chrome is the shared navigation/branding data every page receives.
type Chrome struct {
	StoreName   string
	Logo        string
	HeaderColor string
	Foreground  string
	LoggedIn    bool
	Year        int
}

// BuildChrome derives the page chrome from stored branding.
func BuildChrome(b models.StoreBranding, loggedIn bool) Chrome {
	color := b.HeaderColor
	if color == "" {
		color = models.DefaultHeaderColor
	}
	name := b.StoreName
	if name == "" {
		name = models.DefaultStoreName
	}
	return Chrome{
		StoreName:   name,
		Logo:        b.Logo,
		HeaderColor: color,
		Foreground:  ContrastColor(color),
		LoggedIn:    loggedIn,
		Year:        time.Now().Year(),
	}
}

// StorePage is the view fed to every storefront template. Swapping the
// active template never changes this shape.
type StorePage struct {
	Chrome           Chrome
	Products         []ProductView
	Query            string
	Categories       []models.Category
	SelectedCategory int64
	SortOrder        string
	Page             int
	PageCount        int
	Total            int
	Pager            []PagerItem
	HasPrev          bool
	HasNext          bool
	PrevPage         int
	NextPage         int
	Notice           string
}

// WithPagination fills the pager fields from the current position.
func (p *StorePage) WithPagination(page, pageCount, total int) {
	p.Page = page
	p.PageCount = pageCount
	p.Total = total
	p.Pager = BuildPager(page, pageCount)
	p.HasPrev = page > 1
	p.HasNext = page < pageCount
	p.PrevPage = page - 1
	p.NextPage = page + 1
}
