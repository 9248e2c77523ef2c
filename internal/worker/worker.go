package worker

import (
	"context"
	"sync"

	"storefront-web/internal/catalog"
	"storefront-web/internal/upstream"
	"storefront-web/internal/util"

	"go.uber.org/zap"
)

// ImagePool resolves product image lists concurrently through a fixed
// set of workers. Each visible product that has no cached result yet is
// submitted as one job; a failed fetch is cached as an empty list so the
// product is not retried on subsequent renders.
type ImagePool struct {
	client  *upstream.Client
	cache   *catalog.ImageCache
	logger  *zap.Logger
	jobs    chan imageJob
	quit    chan struct{}
	workers int
	wg      sync.WaitGroup
	once    sync.Once
}

type imageJob struct {
	ctx       context.Context
	token     string
	productID int64
	done      *sync.WaitGroup
}

// NewImagePool creates a pool with the given worker count. Counts below
// one are raised to one.
func NewImagePool(client *upstream.Client, cache *catalog.ImageCache, workers int) *ImagePool {
	if workers < 1 {
		workers = 1
	}
	return &ImagePool{
		client:  client,
		cache:   cache,
		logger:  util.GetLogger(),
		jobs:    make(chan imageJob, workers*4),
		quit:    make(chan struct{}),
		workers: workers,
	}
}

// Start launches the worker goroutines.
func (p *ImagePool) Start() {
	p.logger.Info("Starting image resolver pool", zap.Int("workers", p.workers))
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
}

// Stop shuts the pool down and waits for in-flight jobs to finish.
// Pending submissions are abandoned.
func (p *ImagePool) Stop() {
	p.once.Do(func() {
		close(p.quit)
	})
	p.wg.Wait()
	p.logger.Info("Image resolver pool stopped")
}

// Resolve fills the cache for every listed product that has no result
// yet, blocking until all submitted jobs complete or ctx is done. On a
// cancelled context the unresolved products simply render without an
// image.
func (p *ImagePool) Resolve(ctx context.Context, token string, productIDs []int64) {
	var pending sync.WaitGroup
	for _, id := range productIDs {
		if p.cache.Has(id) {
			util.ImageCacheHitsTotal.Inc()
			continue
		}
		util.ImageCacheMissesTotal.Inc()

		pending.Add(1)
		job := imageJob{ctx: ctx, token: token, productID: id, done: &pending}
		select {
		case p.jobs <- job:
		case <-p.quit:
			pending.Done()
		case <-ctx.Done():
			pending.Done()
		}
	}

	finished := make(chan struct{})
	go func() {
		pending.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-ctx.Done():
	}
}

func (p *ImagePool) run(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.jobs:
			p.resolveOne(job)
		}
	}
}

func (p *ImagePool) resolveOne(job imageJob) {
	defer job.done.Done()

	// Another worker may have resolved the same product between
	// submission and pickup.
	if p.cache.Has(job.productID) {
		return
	}

	imgs, err := p.client.GetProductImages(job.ctx, job.token, job.productID)
	if err != nil {
		util.ImageFetchFailuresTotal.Inc()
		p.logger.Warn("Image fetch failed, caching empty result",
			zap.Int64("product_id", job.productID),
			zap.Error(err))
		p.cache.Put(job.productID, nil)
		return
	}
	p.cache.Put(job.productID, imgs)
}
