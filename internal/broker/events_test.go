package broker

import (
	"context"
	"testing"

	"storefront-web/internal/models"
)

// Event emission is best effort: with no broker configured every publish
// must be a silent no-op.
func TestPublisherWithoutProducerIsNoOp(t *testing.T) {
	ctx := context.Background()
	pub := NewActivityPublisher(nil)

	pub.ProductChanged(ctx, models.EventTypeProductCreated, 1, "SKU-001", "Polera")
	pub.ImagesAdded(ctx, 1, 2)
	pub.ImageDeleted(ctx, 1, 10)
	pub.BrandingUpdated(ctx, models.DefaultBranding())
}

func TestNilPublisherIsSafe(t *testing.T) {
	var pub *ActivityPublisher

	pub.ProductChanged(context.Background(), models.EventTypeProductDeleted, 1, "", "")
}
