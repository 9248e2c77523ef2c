package service

import (
	"context"
	"fmt"
	"sync"

	"storefront-web/internal/broker"
	"storefront-web/internal/catalog"
	"storefront-web/internal/models"
	"storefront-web/internal/upstream"
	"storefront-web/internal/util"
	"storefront-web/internal/worker"

	"go.uber.org/zap"
)

// RelatedLimit caps the related-products strip on the detail page.
const RelatedLimit = 4

// CatalogService orchestrates the remote catalog API, the image
// resolver pool and the activity event stream. It keeps one normalized
// copy of the product collection in memory; every admin mutation drops
// that copy so the next page load refetches wholesale. All views of the
// catalog derive from the same fetched collection.
type CatalogService struct {
	client        *upstream.Client
	images        *catalog.ImageCache
	pool          *worker.ImagePool
	events        *broker.ActivityPublisher
	logger        *zap.Logger
	pageSize      int
	categoryLimit int

	mu         sync.RWMutex
	products   []models.Product
	loaded     bool
	categories []models.Category
	catsLoaded bool
}

// NewCatalogService wires the service. events may be nil when no broker
// is configured.
func NewCatalogService(client *upstream.Client, images *catalog.ImageCache, pool *worker.ImagePool, events *broker.ActivityPublisher, pageSize, categoryLimit int) *CatalogService {
	if pageSize < 1 {
		pageSize = 8
	}
	return &CatalogService{
		client:        client,
		images:        images,
		pool:          pool,
		events:        events,
		logger:        util.GetLogger(),
		pageSize:      pageSize,
		categoryLimit: categoryLimit,
	}
}

// PageSize returns the fixed storefront page size.
func (s *CatalogService) PageSize() int {
	return s.pageSize
}

// Products returns the normalized product collection, fetching it once
// and serving subsequent calls from memory until invalidated.
func (s *CatalogService) Products(ctx context.Context, token string) ([]models.Product, error) {
	s.mu.RLock()
	if s.loaded {
		products := s.products
		s.mu.RUnlock()
		util.CatalogFetchesTotal.WithLabelValues("cache").Inc()
		return products, nil
	}
	s.mu.RUnlock()

	raws, err := s.client.ListProducts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product collection: %w", err)
	}
	products := catalog.NormalizeAll(raws)
	util.CatalogFetchesTotal.WithLabelValues("upstream").Inc()

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()
	return products, nil
}

// Categories returns the id+name category list, cached after the first
// successful fetch.
func (s *CatalogService) Categories(ctx context.Context, token string) ([]models.Category, error) {
	s.mu.RLock()
	if s.catsLoaded {
		categories := s.categories
		s.mu.RUnlock()
		return categories, nil
	}
	s.mu.RUnlock()

	categories, err := s.client.ListCategories(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	s.mu.Lock()
	s.categories = categories
	s.catsLoaded = true
	s.mu.Unlock()
	return categories, nil
}

// CategoryNames resolves the id-to-name lookup map. A failed category
// fetch degrades to an empty map so products render with the placeholder
// category label instead of failing the page.
func (s *CatalogService) CategoryNames(ctx context.Context, token string) map[int64]string {
	categories, err := s.Categories(ctx, token)
	if err != nil {
		s.logger.Warn("Category fetch failed, rendering without category names", zap.Error(err))
		return map[int64]string{}
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

// Invalidate drops the cached product collection so the next read
// refetches from upstream.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.products = nil
	s.mu.Unlock()
}

// BrowseQuery carries the storefront listing parameters.
type BrowseQuery struct {
	Query      string
	PrevQuery  string
	CategoryID int64
	Page       int
	Sort       string
}

// BrowseResult is one resolved storefront page: the visible slice plus
// everything needed to render filters and pagination.
type BrowseResult struct {
	Products      []models.Product
	Page          int
	PageCount     int
	Total         int
	Categories    []models.Category
	CategoryNames map[int64]string
}

// Browse resolves one storefront page. A selected category narrows the
// fetch to that category's endpoint; the text query then filters
// whichever collection was fetched. Changing the query snaps back to
// page one. Images for the visible slice are resolved before returning.
func (s *CatalogService) Browse(ctx context.Context, token string, q BrowseQuery) (BrowseResult, error) {
	var (
		products []models.Product
		err      error
	)
	if q.CategoryID > 0 {
		var raws []catalog.RawProduct
		raws, err = s.client.ProductsByCategory(ctx, token, q.CategoryID, 0, s.categoryLimit)
		if err == nil {
			products = catalog.NormalizeAll(raws)
			util.CatalogFetchesTotal.WithLabelValues("category").Inc()
		}
	} else {
		products, err = s.Products(ctx, token)
	}
	if err != nil {
		return BrowseResult{}, err
	}

	filtered := catalog.Filter(products, q.Query)
	sorted := catalog.Sorted(filtered, q.Sort)

	pageCount := catalog.PageCount(len(sorted), s.pageSize)
	page := catalog.PageAfterQueryChange(q.PrevQuery, q.Query, q.Page)
	page = catalog.ClampPage(page, pageCount)
	visible := catalog.Paginate(sorted, s.pageSize, page)

	s.resolveImages(ctx, token, visible)

	categories, catErr := s.Categories(ctx, token)
	if catErr != nil {
		s.logger.Warn("Category fetch failed, rendering without filter chips", zap.Error(catErr))
		categories = nil
	}

	return BrowseResult{
		Products:      visible,
		Page:          page,
		PageCount:     pageCount,
		Total:         len(sorted),
		Categories:    categories,
		CategoryNames: s.CategoryNames(ctx, token),
	}, nil
}

// AdminList resolves one admin table page over the full collection with
// an optional text filter. No sort control is offered there.
func (s *CatalogService) AdminList(ctx context.Context, token, query string, page int) (BrowseResult, error) {
	products, err := s.Products(ctx, token)
	if err != nil {
		return BrowseResult{}, err
	}
	filtered := catalog.Filter(products, query)

	pageCount := catalog.PageCount(len(filtered), s.pageSize)
	page = catalog.ClampPage(page, pageCount)
	visible := catalog.Paginate(filtered, s.pageSize, page)

	s.resolveImages(ctx, token, visible)

	return BrowseResult{
		Products:      visible,
		Page:          page,
		PageCount:     pageCount,
		Total:         len(filtered),
		CategoryNames: s.CategoryNames(ctx, token),
	}, nil
}

// Detail fetches one product with its full image list and up to
// RelatedLimit products from the same category.
func (s *CatalogService) Detail(ctx context.Context, token string, id int64) (models.Product, []models.ProductImage, []models.Product, error) {
	raw, err := s.client.GetProduct(ctx, token, id)
	if err != nil {
		return models.Product{}, nil, nil, err
	}
	product := catalog.Normalize(raw)

	imgs, err := s.ProductImages(ctx, token, id)
	if err != nil {
		s.logger.Warn("Image fetch failed for detail page",
			zap.Int64("product_id", id),
			zap.Error(err))
		imgs = nil
	}

	var related []models.Product
	if all, err := s.Products(ctx, token); err == nil {
		for _, p := range all {
			if p.ID == product.ID || p.CategoryID != product.CategoryID {
				continue
			}
			related = append(related, p)
			if len(related) == RelatedLimit {
				break
			}
		}
		s.resolveImages(ctx, token, related)
	}

	return product, imgs, related, nil
}

// ProductImages returns a product's image list through the keyed cache.
func (s *CatalogService) ProductImages(ctx context.Context, token string, productID int64) ([]models.ProductImage, error) {
	if imgs, ok := s.images.Get(productID); ok {
		return imgs, nil
	}
	imgs, err := s.client.GetProductImages(ctx, token, productID)
	if err != nil {
		return nil, err
	}
	s.images.Put(productID, imgs)
	return imgs, nil
}

// PrimaryImage returns the product's resolved display image, if any.
func (s *CatalogService) PrimaryImage(productID int64) (string, bool) {
	return s.images.Primary(productID)
}

// Create submits a new product, emits the activity event and drops the
// cached collection.
func (s *CatalogService) Create(ctx context.Context, token string, payload upstream.ProductPayload) error {
	raw, err := s.client.CreateProduct(ctx, token, payload)
	if err != nil {
		return err
	}
	created := catalog.Normalize(raw)
	s.events.ProductChanged(ctx, models.EventTypeProductCreated, created.ID, payload.SKU, payload.Title)
	s.Invalidate()
	return nil
}

// Update replaces a product's fields, emits the activity event and
// drops the cached collection.
func (s *CatalogService) Update(ctx context.Context, token string, id int64, payload upstream.ProductPayload) error {
	if err := s.client.UpdateProduct(ctx, token, id, payload); err != nil {
		return err
	}
	s.events.ProductChanged(ctx, models.EventTypeProductUpdated, id, payload.SKU, payload.Title)
	s.Invalidate()
	return nil
}

// Delete removes a product, emits the activity event and drops both the
// cached collection and the product's cached images.
func (s *CatalogService) Delete(ctx context.Context, token string, id int64) error {
	sku, title := s.lookup(id)
	if err := s.client.DeleteProduct(ctx, token, id); err != nil {
		return err
	}
	s.events.ProductChanged(ctx, models.EventTypeProductDeleted, id, sku, title)
	s.images.Invalidate(id)
	s.Invalidate()
	return nil
}

// AddImages attaches image URLs to a product and drops its cached list
// so the next render shows the fresh set.
func (s *CatalogService) AddImages(ctx context.Context, token string, productID int64, urls []string) error {
	if err := s.client.AddProductImages(ctx, token, productID, urls); err != nil {
		return err
	}
	s.images.Invalidate(productID)
	s.events.ImagesAdded(ctx, productID, len(urls))
	return nil
}

// DeleteImage removes one image and prunes exactly that entry from the
// owning product's cached set.
func (s *CatalogService) DeleteImage(ctx context.Context, token string, productID, imageID int64) error {
	if err := s.client.DeleteProductImage(ctx, token, imageID); err != nil {
		return err
	}
	s.images.Remove(productID, imageID)
	s.events.ImageDeleted(ctx, productID, imageID)
	return nil
}

func (s *CatalogService) resolveImages(ctx context.Context, token string, products []models.Product) {
	if s.pool == nil || len(products) == 0 {
		return
	}
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	s.pool.Resolve(ctx, token, ids)
}

// lookup finds a product's sku and title in the cached collection for
// event payloads. Blank values are acceptable there.
func (s *CatalogService) lookup(id int64) (sku, title string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p.SKU, p.Name
		}
	}
	return "", ""
}
