package catalog

import (
	"testing"

	"storefront-web/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, SKU: "SKU-001", Name: "Polera Azul", Description: "Algodón"},
		{ID: 2, SKU: "SKU-002", Name: "Zapatilla Urbana", Description: "Running"},
		{ID: 3, SKU: "SKU-003", Name: "Gorro de Lana", Description: "Invierno azul"},
		{ID: 4, SKU: "AZU-004", Name: "Cinturón", Description: "Cuero"},
	}
}

func TestFilterBlankQueryReturnsInputUnchanged(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, products, Filter(products, ""))
	assert.Equal(t, products, Filter(products, "   "))
}

func TestFilterMatchesNameSKUAndDescription(t *testing.T) {
	products := sampleProducts()

	got := Filter(products, "azu")

	// Name (Polera Azul), description (Invierno azul) and SKU (AZU-004)
	// all match, in original order.
	assert.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, int64(4), got[2].ID)
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	products := sampleProducts()

	assert.Len(t, Filter(products, "POLERA"), 1)
	assert.Len(t, Filter(products, "sku-002"), 1)
}

func TestFilterNoMatches(t *testing.T) {
	got := Filter(sampleProducts(), "inexistente")
	assert.Empty(t, got)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0, 8))
	assert.Equal(t, 1, PageCount(8, 8))
	assert.Equal(t, 2, PageCount(9, 8))
	assert.Equal(t, 3, PageCount(17, 8))
	assert.Equal(t, 1, PageCount(5, 0))
}

func TestPaginatePartitionsExactly(t *testing.T) {
	products := make([]models.Product, 10)
	for i := range products {
		products[i] = models.Product{ID: int64(i + 1)}
	}

	var seen []int64
	pageCount := PageCount(len(products), 4)
	for page := 1; page <= pageCount; page++ {
		for _, p := range Paginate(products, 4, page) {
			seen = append(seen, p.ID)
		}
	}

	// Every product appears exactly once, in order.
	assert.Len(t, seen, 10)
	for i, id := range seen {
		assert.Equal(t, int64(i+1), id)
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	products := sampleProducts()

	assert.Empty(t, Paginate(products, 8, 2))
	assert.Empty(t, Paginate(products, 8, 0))
	assert.Empty(t, Paginate(nil, 8, 1))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 5))
	assert.Equal(t, 1, ClampPage(-3, 5))
	assert.Equal(t, 3, ClampPage(3, 5))
	assert.Equal(t, 5, ClampPage(9, 5))
}

func TestPageAfterQueryChange(t *testing.T) {
	// Changed query snaps back to page one.
	assert.Equal(t, 1, PageAfterQueryChange("polera", "gorro", 4))
	// Unchanged query keeps the requested page.
	assert.Equal(t, 4, PageAfterQueryChange("polera", "polera", 4))
	// Whitespace-only differences are not a change.
	assert.Equal(t, 4, PageAfterQueryChange(" polera ", "polera", 4))
}

func TestSortedOrders(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "B", Price: 300},
		{ID: 2, Name: "C", Price: 100},
		{ID: 3, Name: "A", Price: 200},
	}

	asc := Sorted(products, SortPriceAsc)
	assert.Equal(t, []int64{2, 3, 1}, ids(asc))

	desc := Sorted(products, SortPriceDesc)
	assert.Equal(t, []int64{1, 3, 2}, ids(desc))

	byName := Sorted(products, SortName)
	assert.Equal(t, []int64{3, 1, 2}, ids(byName))

	// "nuevo" and unknown orders keep the fetched order.
	assert.Equal(t, []int64{1, 2, 3}, ids(Sorted(products, SortNewest)))
	assert.Equal(t, []int64{1, 2, 3}, ids(Sorted(products, "whatever")))

	// Input is never mutated.
	assert.Equal(t, []int64{1, 2, 3}, ids(products))
}

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
