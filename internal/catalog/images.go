package catalog

import (
	"sync"

	"storefront-web/internal/models"
)

// ImageCache holds per-product image lists keyed by product id. Results
// of concurrent fetches are merged one key at a time, so an entry is
// never clobbered by an unrelated product's result. A failed fetch is
// recorded as an empty list so the product is not fetched again.
type ImageCache struct {
	mu     sync.RWMutex
	images map[int64][]models.ProductImage
}

// NewImageCache creates an empty image cache
func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[int64][]models.ProductImage)}
}

// Get returns the cached image list for a product and whether any result
// (including a cached failure) is present.
func (c *ImageCache) Get(productID int64) ([]models.ProductImage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	imgs, ok := c.images[productID]
	return imgs, ok
}

// Has reports whether a result is already cached for the product.
func (c *ImageCache) Has(productID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.images[productID]
	return ok
}

// Put merges one product's fetched image list into the cache. A nil list
// is stored as empty, marking the fetch as resolved.
func (c *ImageCache) Put(productID int64, imgs []models.ProductImage) {
	if imgs == nil {
		imgs = []models.ProductImage{}
	}
	c.mu.Lock()
	c.images[productID] = imgs
	c.mu.Unlock()
}

// Primary returns the product's resolved image: the first entry in the
// order the API returned, or absent.
func (c *ImageCache) Primary(productID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	imgs := c.images[productID]
	if len(imgs) == 0 {
		return "", false
	}
	return imgs[0].URLImagen, true
}

// Remove deletes exactly one image from its owning product's cached set,
// leaving every other product's set untouched.
func (c *ImageCache) Remove(productID, imageID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	imgs, ok := c.images[productID]
	if !ok {
		return
	}
	kept := make([]models.ProductImage, 0, len(imgs))
	for _, img := range imgs {
		if img.ID != imageID {
			kept = append(kept, img)
		}
	}
	c.images[productID] = kept
}

// Invalidate drops a product's cached list so the next render re-fetches it.
func (c *ImageCache) Invalidate(productID int64) {
	c.mu.Lock()
	delete(c.images, productID)
	c.mu.Unlock()
}
