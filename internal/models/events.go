package models

import "time"

// Activity event types
const (
	EventTypeProductCreated  = "PRODUCT_CREATED"
	EventTypeProductUpdated  = "PRODUCT_UPDATED"
	EventTypeProductDeleted  = "PRODUCT_DELETED"
	EventTypeImagesAdded     = "PRODUCT_IMAGES_ADDED"
	EventTypeImageDeleted    = "PRODUCT_IMAGE_DELETED"
	EventTypeBrandingUpdated = "BRANDING_UPDATED"
)

// BaseEvent contains common fields for all activity events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductEvent published when an admin creates, updates or deletes a product
type ProductEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Title     string `json:"title"`
}

// ImageEvent published when product images are attached or removed
type ImageEvent struct {
	BaseEvent
	ProductID int64 `json:"product_id"`
	ImageID   int64 `json:"image_id,omitempty"`
	Count     int   `json:"count,omitempty"`
}

// BrandingEvent published when a visitor saves store customization
type BrandingEvent struct {
	BaseEvent
	StoreName   string `json:"store_name"`
	HeaderColor string `json:"header_color"`
	TemplateKey string `json:"template_key"`
}
