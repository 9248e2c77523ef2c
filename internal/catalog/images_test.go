package catalog

import (
	"fmt"
	"sync"
	"testing"

	"storefront-web/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestImageCachePutAndPrimary(t *testing.T) {
	cache := NewImageCache()

	cache.Put(1, []models.ProductImage{
		{ID: 10, ProductID: 1, URLImagen: "https://img/a.jpg"},
		{ID: 11, ProductID: 1, URLImagen: "https://img/b.jpg"},
	})

	// Primary is the first entry in fetch order.
	url, ok := cache.Primary(1)
	assert.True(t, ok)
	assert.Equal(t, "https://img/a.jpg", url)

	_, ok = cache.Primary(2)
	assert.False(t, ok)
}

func TestImageCacheEmptyResultMarksResolved(t *testing.T) {
	cache := NewImageCache()

	// A failed fetch is recorded as empty: resolved but imageless.
	cache.Put(5, nil)

	assert.True(t, cache.Has(5))
	_, ok := cache.Primary(5)
	assert.False(t, ok)
}

func TestImageCacheRemoveDeletesExactlyOne(t *testing.T) {
	cache := NewImageCache()
	cache.Put(1, []models.ProductImage{
		{ID: 10, ProductID: 1, URLImagen: "a"},
		{ID: 11, ProductID: 1, URLImagen: "b"},
		{ID: 12, ProductID: 1, URLImagen: "c"},
	})
	cache.Put(2, []models.ProductImage{
		{ID: 20, ProductID: 2, URLImagen: "x"},
	})

	cache.Remove(1, 11)

	imgs, _ := cache.Get(1)
	assert.Len(t, imgs, 2)
	assert.Equal(t, int64(10), imgs[0].ID)
	assert.Equal(t, int64(12), imgs[1].ID)

	// The other product's set is untouched.
	other, _ := cache.Get(2)
	assert.Len(t, other, 1)
}

func TestImageCacheInvalidate(t *testing.T) {
	cache := NewImageCache()
	cache.Put(1, []models.ProductImage{{ID: 10, URLImagen: "a"}})

	cache.Invalidate(1)

	assert.False(t, cache.Has(1))
}

func TestImageCacheConcurrentKeyedMerge(t *testing.T) {
	cache := NewImageCache()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			cache.Put(id, []models.ProductImage{
				{ID: id * 100, ProductID: id, URLImagen: fmt.Sprintf("https://img/%d.jpg", id)},
			})
		}(int64(i))
	}
	wg.Wait()

	// Each key holds exactly its own product's result.
	for i := int64(1); i <= 50; i++ {
		url, ok := cache.Primary(i)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("https://img/%d.jpg", i), url)
	}
}
