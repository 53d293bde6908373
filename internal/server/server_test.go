package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryApp(ping func() error) *Options {
	repo := repositories.NewInMemoryProductRepository()
	return &Options{
		ProductService: services.NewProductService(repo, nil, nil),
		Ping:           ping,
	}
}

func TestHealthWithoutStorePing(t *testing.T) {
	app := New(*newMemoryApp(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "unknown", body["database"])
}

func TestHealthReportsStoreDown(t *testing.T) {
	app := New(*newMemoryApp(func() error { return errors.New("connection refused") }))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestProductsOverMemoryStore(t *testing.T) {
	app := New(*newMemoryApp(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"title":"Blue Mug","sizes":["M"],"gender":"unisex"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/products/blue_mug", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Blue Mug", body["title"])
	assert.Equal(t, []interface{}{}, body["images"])
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	app := New(*newMemoryApp(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body["code"])
}
