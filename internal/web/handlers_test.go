package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-web/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestBrowseQueryParsesParameters(t *testing.T) {
	c := testContext(t, "/buscar?q=polera&categoria=2&orden=precio-asc&page=3")

	q := browseQuery(c)

	assert.Equal(t, "polera", q.Query)
	assert.Equal(t, int64(2), q.CategoryID)
	assert.Equal(t, "precio-asc", q.Sort)
	assert.Equal(t, 3, q.Page)
}

func TestBrowseQueryPagerLinksKeepPage(t *testing.T) {
	// Pager links omit pq, so the previous query defaults to the
	// current one and the requested page survives.
	c := testContext(t, "/buscar?q=polera&page=3")

	q := browseQuery(c)

	assert.Equal(t, "polera", q.PrevQuery)
	assert.Equal(t, 3, q.Page)
}

func TestBrowseQueryNewSearchCarriesPreviousQuery(t *testing.T) {
	// Form submissions send pq with the query the visitor was on.
	c := testContext(t, "/buscar?q=gorro&pq=polera&page=3")

	q := browseQuery(c)

	assert.Equal(t, "gorro", q.Query)
	assert.Equal(t, "polera", q.PrevQuery)
}

func TestQueryPageDefaults(t *testing.T) {
	assert.Equal(t, 1, queryPage(testContext(t, "/")))
	assert.Equal(t, 1, queryPage(testContext(t, "/?page=abc")))
	assert.Equal(t, 1, queryPage(testContext(t, "/?page=0")))
	assert.Equal(t, 1, queryPage(testContext(t, "/?page=-2")))
	assert.Equal(t, 7, queryPage(testContext(t, "/?page=7")))
}

func TestParamInt64(t *testing.T) {
	c := testContext(t, "/producto/12")
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	id, ok := paramInt64(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok = paramInt64(c, "id")
	assert.False(t, ok)

	c.Params = gin.Params{{Key: "id", Value: "-3"}}
	_, ok = paramInt64(c, "id")
	assert.False(t, ok)
}

func TestProductToValues(t *testing.T) {
	values := productToValues(models.Product{
		ID:            1,
		SKU:           "SKU-001",
		Name:          "Polera",
		Description:   "Algodón",
		Price:         12990.5,
		StockQuantity: 5,
		CategoryID:    2,
	})

	assert.Equal(t, "SKU-001", values["sku"])
	assert.Equal(t, "Polera", values["title"])
	assert.Equal(t, "12990.5", values["price"])
	assert.Equal(t, "5", values["stock_quantity"])
	assert.Equal(t, "2", values["category_id"])
}

func TestProductToValuesZeroPriceLeftBlank(t *testing.T) {
	values := productToValues(models.Product{ID: 1, Name: "Polera"})

	_, present := values["price"]
	assert.False(t, present)
}

func TestEditAction(t *testing.T) {
	assert.Equal(t, "/admin/productos/7", editAction(7))
}

func TestFirstOf(t *testing.T) {
	assert.Equal(t, "", firstOf(nil))
	assert.Equal(t, "a", firstOf([]string{"a", "b"}))
}
