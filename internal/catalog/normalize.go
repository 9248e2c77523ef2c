package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"storefront-web/internal/models"
)

// RawProduct is a product record exactly as decoded from the upstream
// API. Field names are unpredictable: older records use localized keys
// (nombre, precio, descripcion), newer ones the English variants.
type RawProduct map[string]any

// FallbackName is shown when a record carries no usable display name.
const FallbackName = "Producto"

// Normalize maps a heterogeneous product record into the canonical
// display shape. Resolution order per field is fixed: name, nombre,
// title for the display name; price then precio; description then
// descripcion; stock_quantity then stock. Numeric coercion never fails,
// it falls back to zero.
func Normalize(raw RawProduct) models.Product {
	return models.Product{
		ID:            toInt64(firstPresent(raw, "id", "_id")),
		SKU:           toString(raw["sku"]),
		Name:          displayName(raw),
		Description:   toString(firstPresent(raw, "description", "descripcion")),
		Price:         toFloat64(firstPresent(raw, "price", "precio")),
		StockQuantity: int(toInt64(firstPresent(raw, "stock_quantity", "stock"))),
		CategoryID:    toInt64(raw["category_id"]),
		Status:        toString(raw["status"]),
	}
}

// NormalizeAll maps a fetched collection, preserving order.
func NormalizeAll(raws []RawProduct) []models.Product {
	products := make([]models.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, Normalize(raw))
	}
	return products
}

func displayName(raw RawProduct) string {
	for _, key := range []string{"name", "nombre", "title"} {
		if s := toString(raw[key]); s != "" {
			return s
		}
	}
	return FallbackName
}

// firstPresent returns the first key that holds a non-nil value.
func firstPresent(raw RawProduct, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func toString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return int64(toFloat64(v))
		}
		return i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
