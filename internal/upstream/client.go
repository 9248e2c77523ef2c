package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront-web/internal/catalog"
	"storefront-web/internal/models"
	"storefront-web/internal/util"

	"go.uber.org/zap"
)

// Client is a typed wrapper over the remote catalog API. It owns
// attaching bearer-token authorization headers and mapping HTTP failures
// onto the error taxonomy: 401 becomes models.ErrSessionExpired (after
// invoking the registered auth-error hook exactly once for the failing
// call), 404 becomes models.ErrNotFound, any other non-2xx a StatusError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	authHook   func()
}

// StatusError is an upstream response outside 2xx that is neither a
// session expiry nor a missing entity.
type StatusError struct {
	Operation string
	Code      int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s: status %d", e.Operation, e.Code)
}

// NewClient creates a catalog API client. A nil httpClient falls back to
// http.DefaultClient; no timeout is imposed here, a hung request leaves
// the affected page region unresolved by design.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     util.GetLogger(),
	}
}

// SetAuthErrorHook registers a callback invoked once per request that
// fails with 401.
func (c *Client) SetAuthErrorHook(hook func()) {
	c.authHook = hook
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// RegisterRequest is the registration payload expected upstream.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// ProductPayload is the body shape for product create and update.
type ProductPayload struct {
	SKU           string  `json:"sku"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    int64   `json:"category_id"`
}

type imagePayload struct {
	URLImagen string `json:"url_imagen"`
}

// Login authenticates and returns the bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login response missing access_token")
	}
	return resp.AccessToken, nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, "register", http.MethodPost, "/api/auth/register", "", req, nil)
}

// ListProducts fetches the full catalog as raw records.
func (c *Client) ListProducts(ctx context.Context, token string) ([]catalog.RawProduct, error) {
	var raws []catalog.RawProduct
	if err := c.do(ctx, "list_products", http.MethodGet, "/api/productos/", token, nil, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, token string, id int64) (catalog.RawProduct, error) {
	var raw catalog.RawProduct
	path := fmt.Sprintf("/api/productos/%d", id)
	if err := c.do(ctx, "get_product", http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CreateProduct creates a product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, token string, p ProductPayload) (catalog.RawProduct, error) {
	var raw catalog.RawProduct
	if err := c.do(ctx, "create_product", http.MethodPost, "/api/productos/", token, p, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UpdateProduct replaces a product's fields.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, p ProductPayload) error {
	path := fmt.Sprintf("/api/productos/%d/", id)
	return c.do(ctx, "update_product", http.MethodPut, path, token, p, nil)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/api/productos/%d/", id)
	return c.do(ctx, "delete_product", http.MethodDelete, path, token, nil, nil)
}

// ListCategories fetches the id+name category list.
func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, "list_categories", http.MethodGet, "/api/categorias-con-id/", token, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ProductsByCategory fetches a single category's products with
// skip/limit paging parameters.
func (c *Client) ProductsByCategory(ctx context.Context, token string, categoryID int64, skip, limit int) ([]catalog.RawProduct, error) {
	path := fmt.Sprintf("/api/productos/por-categoria/%d?skip=%s&limit=%s",
		categoryID, strconv.Itoa(skip), strconv.Itoa(limit))
	var raws []catalog.RawProduct
	if err := c.do(ctx, "products_by_category", http.MethodGet, path, token, nil, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// GetProductImages fetches one product's image list in creation order.
func (c *Client) GetProductImages(ctx context.Context, token string, productID int64) ([]models.ProductImage, error) {
	path := fmt.Sprintf("/api/productos/%d/imagenes", productID)
	var imgs []models.ProductImage
	if err := c.do(ctx, "get_product_images", http.MethodGet, path, token, nil, &imgs); err != nil {
		return nil, err
	}
	return imgs, nil
}

// AddProductImages attaches image URLs (or data URIs) to a product.
func (c *Client) AddProductImages(ctx context.Context, token string, productID int64, urls []string) error {
	payload := make([]imagePayload, 0, len(urls))
	for _, u := range urls {
		payload = append(payload, imagePayload{URLImagen: u})
	}
	path := fmt.Sprintf("/api/productos/%d/imagenes", productID)
	return c.do(ctx, "add_product_images", http.MethodPost, path, token, payload, nil)
}

// DeleteProductImage removes an image by image id.
func (c *Client) DeleteProductImage(ctx context.Context, token string, imageID int64) error {
	path := fmt.Sprintf("/api/productos/imagenes/%d", imageID)
	return c.do(ctx, "delete_product_image", http.MethodDelete, path, token, nil, nil)
}

func (c *Client) do(ctx context.Context, operation, method, path, token string, body, out any) error {
	ctx, span := util.StartSpan(ctx, "upstream."+operation)
	defer span.End()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s body: %w", operation, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	util.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		util.UpstreamRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("upstream %s failed: %w", operation, err)
	}
	defer resp.Body.Close()

	util.UpstreamRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.authHook != nil {
			c.authHook()
		}
		return fmt.Errorf("upstream %s: %w", operation, models.ErrSessionExpired)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("upstream %s: %w", operation, models.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Warn("Upstream request rejected",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Operation: operation, Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}
