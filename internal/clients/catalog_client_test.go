package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogTestServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":1,"name":"Air Zoom","price":"Rp 1.500.000","category":{"id":2,"name":"Running"},"gender":"men","img_url":"products/zoom.png"},
			{"id":2,"name":"Court Vision","price":120.5,"category":"basketball","is_new":true}
		]}`))
	})
	mux.HandleFunc("/products/2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":2,"name":"Court Vision","price":120.5}}`))
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1,"name":"Running"},{"id":2,"name":"Basketball"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListProductsDecodesEnvelope(t *testing.T) {
	var hits atomic.Int64
	srv := newCatalogTestServer(t, &hits)
	client := NewCatalogClient(srv.URL)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Loose fields arrive as-is; the normalizer deals with them later.
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Rp 1.500.000", products[0].Price)
	assert.Equal(t, "products/zoom.png", products[0].ImgURL)
	assert.Equal(t, true, products[1].IsNewAlt)
}

func TestListProductsServesFromCache(t *testing.T) {
	var hits atomic.Int64
	srv := newCatalogTestServer(t, &hits)
	client := NewCatalogClient(srv.URL)
	ctx := context.Background()

	_, err := client.ListProducts(ctx)
	require.NoError(t, err)
	_, err = client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())

	client.InvalidateCache()
	_, err = client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestGetProduct(t *testing.T) {
	var hits atomic.Int64
	srv := newCatalogTestServer(t, &hits)
	client := NewCatalogClient(srv.URL)

	product, err := client.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), product.ID)
	assert.Equal(t, "Court Vision", product.Name)
}

func TestListCategories(t *testing.T) {
	var hits atomic.Int64
	srv := newCatalogTestServer(t, &hits)
	client := NewCatalogClient(srv.URL)

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Running", categories[0].Name)
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := NewCatalogClient(srv.URL)

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
