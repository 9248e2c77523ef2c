package render

import (
	"testing"

	"storefront-web/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0", FormatMoney(0))
	assert.Equal(t, "999", FormatMoney(999))
	assert.Equal(t, "12.990", FormatMoney(12990))
	assert.Equal(t, "1.234.567", FormatMoney(1234567))
	assert.Equal(t, "0", FormatMoney(-50))
}

func TestBuildProductViewWithPrice(t *testing.T) {
	p := models.Product{
		ID:            1,
		Name:          "Polera",
		SKU:           "SKU-001",
		Price:         12990,
		StockQuantity: 5,
		CategoryID:    2,
		Status:        models.StatusActive,
	}
	names := map[int64]string{2: "Ropa"}

	view := BuildProductView(p, "https://img/a.jpg", names)

	assert.True(t, view.HasPrice)
	assert.Equal(t, "$12.990", view.PriceDisplay)
	assert.Equal(t, "Ropa", view.CategoryName)
	assert.True(t, view.Available)
	assert.Equal(t, "https://img/a.jpg", view.ImageURL)
}

func TestBuildProductViewZeroPriceMeansConsult(t *testing.T) {
	view := BuildProductView(models.Product{ID: 1, Name: "Polera"}, "", nil)

	assert.False(t, view.HasPrice)
	assert.Empty(t, view.PriceDisplay)
}

func TestBuildProductViewUnknownCategory(t *testing.T) {
	p := models.Product{ID: 1, CategoryID: 99}

	assert.Equal(t, UnknownCategory, BuildProductView(p, "", nil).CategoryName)
	assert.Equal(t, UnknownCategory, BuildProductView(p, "", map[int64]string{2: "Ropa"}).CategoryName)
}

func TestBuildPagerFewPages(t *testing.T) {
	items := BuildPager(2, 3)

	assert.Len(t, items, 3)
	assert.Equal(t, "1", items[0].Label)
	assert.True(t, items[1].Current)
	assert.False(t, items[0].Ellipsis)
}

func TestBuildPagerNearStart(t *testing.T) {
	items := BuildPager(2, 10)

	labels := pagerLabels(items)
	assert.Equal(t, []string{"1", "2", "3", "4", "…", "10"}, labels)
}

func TestBuildPagerNearEnd(t *testing.T) {
	items := BuildPager(9, 10)

	labels := pagerLabels(items)
	assert.Equal(t, []string{"1", "…", "7", "8", "9", "10"}, labels)
}

func TestBuildPagerMiddle(t *testing.T) {
	items := BuildPager(5, 10)

	labels := pagerLabels(items)
	assert.Equal(t, []string{"1", "…", "4", "5", "6", "…", "10"}, labels)

	for _, item := range items {
		if item.Label == "5" {
			assert.True(t, item.Current)
		}
	}
}

func TestBuildPagerClampsCurrent(t *testing.T) {
	items := BuildPager(99, 3)
	assert.True(t, items[len(items)-1].Current)

	items = BuildPager(0, 3)
	assert.True(t, items[0].Current)
}

func TestBuildChromeDefaults(t *testing.T) {
	chrome := BuildChrome(models.StoreBranding{}, false)

	assert.Equal(t, models.DefaultStoreName, chrome.StoreName)
	assert.Equal(t, models.DefaultHeaderColor, chrome.HeaderColor)
	// Default header is dark, so the foreground must be light.
	assert.Equal(t, "#ffffff", chrome.Foreground)
	assert.False(t, chrome.LoggedIn)
}

func TestBuildChromeCustomBranding(t *testing.T) {
	chrome := BuildChrome(models.StoreBranding{
		StoreName:   "Mi Bazar",
		HeaderColor: "#ffffff",
	}, true)

	assert.Equal(t, "Mi Bazar", chrome.StoreName)
	assert.Equal(t, "#111827", chrome.Foreground)
	assert.True(t, chrome.LoggedIn)
}

func TestWithPagination(t *testing.T) {
	var page StorePage
	page.WithPagination(2, 5, 40)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.PageCount)
	assert.Equal(t, 40, page.Total)
	assert.True(t, page.HasPrev)
	assert.True(t, page.HasNext)
	assert.Equal(t, 1, page.PrevPage)
	assert.Equal(t, 3, page.NextPage)
	assert.NotEmpty(t, page.Pager)

	page.WithPagination(1, 1, 0)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func pagerLabels(items []PagerItem) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}
