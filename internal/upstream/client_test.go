package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@gmail.com", body["username"])

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	token, err := client.Login(context.Background(), "user@gmail.com", "Abcdef1!")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestLoginMissingTokenIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Login(context.Background(), "u", "p")
	assert.Error(t, err)
}

func TestUnauthorizedInvokesHookOnceAndMapsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalls := 0
	client := NewClient(srv.URL, nil)
	client.SetAuthErrorHook(func() { hookCalls++ })

	_, err := client.ListProducts(context.Background(), "stale-token")

	assert.ErrorIs(t, err, models.ErrSessionExpired)
	assert.Equal(t, 1, hookCalls)
}

func TestUnauthorizedWithoutHookDoesNotPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.ListProducts(context.Background(), "stale-token")
	assert.ErrorIs(t, err, models.ErrSessionExpired)
}

func TestNotFoundMapsToErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.GetProduct(context.Background(), "tok", 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestServerErrorMapsToStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.ListProducts(context.Background(), "tok")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "list_products", statusErr.Operation)
}

func TestBearerTokenAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.ListProducts(context.Background(), "tok-abc")
	assert.NoError(t, err)
}

func TestGetProductImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos/7/imagenes", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.ProductImage{
			{ID: 1, ProductID: 7, URLImagen: "https://img/a.jpg"},
			{ID: 2, ProductID: 7, URLImagen: "https://img/b.jpg"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	imgs, err := client.GetProductImages(context.Background(), "tok", 7)

	require.NoError(t, err)
	require.Len(t, imgs, 2)
	assert.Equal(t, "https://img/a.jpg", imgs[0].URLImagen)
}

func TestAddProductImagesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/productos/7/imagenes", r.URL.Path)

		var body []map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "https://img/new.jpg", body[0]["url_imagen"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	err := client.AddProductImages(context.Background(), "tok", 7, []string{"https://img/new.jpg"})
	assert.NoError(t, err)
}

func TestDeleteProductImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/productos/imagenes/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	err := client.DeleteProductImage(context.Background(), "tok", 42)
	assert.NoError(t, err)
}

func TestTransportErrorWrapped(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)

	_, err := client.ListProducts(context.Background(), "tok")

	assert.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrSessionExpired))
}
