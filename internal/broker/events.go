package broker

import (
	"context"
	"strconv"
	"time"

	"storefront-web/internal/models"
	"storefront-web/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityPublisher emits admin activity events. A nil publisher or a
// publish failure is logged and swallowed so the triggering operation
// always succeeds on its own merits.
type ActivityPublisher struct {
	producer *Producer
	logger   *zap.Logger
}

// NewActivityPublisher wraps a producer; producer may be nil to disable
// event emission entirely.
func NewActivityPublisher(producer *Producer) *ActivityPublisher {
	return &ActivityPublisher{
		producer: producer,
		logger:   util.GetLogger(),
	}
}

func newBase(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
}

// ProductChanged emits a product lifecycle event for the given type.
func (a *ActivityPublisher) ProductChanged(ctx context.Context, eventType string, productID int64, sku, title string) {
	a.emit(ctx, eventType, strconv.FormatInt(productID, 10), models.ProductEvent{
		BaseEvent: newBase(eventType),
		ProductID: productID,
		SKU:       sku,
		Title:     title,
	})
}

// ImagesAdded emits an event after images are attached to a product.
func (a *ActivityPublisher) ImagesAdded(ctx context.Context, productID int64, count int) {
	a.emit(ctx, models.EventTypeImagesAdded, strconv.FormatInt(productID, 10), models.ImageEvent{
		BaseEvent: newBase(models.EventTypeImagesAdded),
		ProductID: productID,
		Count:     count,
	})
}

// ImageDeleted emits an event after a product image is removed.
func (a *ActivityPublisher) ImageDeleted(ctx context.Context, productID, imageID int64) {
	a.emit(ctx, models.EventTypeImageDeleted, strconv.FormatInt(productID, 10), models.ImageEvent{
		BaseEvent: newBase(models.EventTypeImageDeleted),
		ProductID: productID,
		ImageID:   imageID,
	})
}

// BrandingUpdated emits an event after store customization is saved.
func (a *ActivityPublisher) BrandingUpdated(ctx context.Context, b models.StoreBranding) {
	a.emit(ctx, models.EventTypeBrandingUpdated, "branding", models.BrandingEvent{
		BaseEvent:   newBase(models.EventTypeBrandingUpdated),
		StoreName:   b.StoreName,
		HeaderColor: b.HeaderColor,
		TemplateKey: b.TemplateKey,
	})
}

func (a *ActivityPublisher) emit(ctx context.Context, eventType, key string, event any) {
	if a == nil || a.producer == nil {
		return
	}
	if err := a.producer.Publish(ctx, key, event); err != nil {
		util.ActivityEventsTotal.WithLabelValues(eventType, "error").Inc()
		a.logger.Warn("Failed to publish activity event",
			zap.String("event_type", eventType),
			zap.Error(err))
		return
	}
	util.ActivityEventsTotal.WithLabelValues(eventType, "ok").Inc()
}
