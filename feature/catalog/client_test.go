package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:        srv.URL,
		CustomerID:     "4928",
		TimeoutSeconds: 5,
	}, zap.NewNop())
	return client, srv
}

func TestListProducts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/4928/listcustomerproducts", r.URL.Path)
		w.Write([]byte(`{"products":[
			{"code":"CH_01","productType":"Production"},
			{"code":"CH_02_DRAFT","productType":"Draft"}
		]}`))
	}))

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "CH_01", products[0].Code)

	prod := FilterProduction(products)
	require.Len(t, prod, 1)
	assert.Equal(t, "CH_01", prod[0].Code)
}

func TestListProducts_HTTPError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
}

func TestGetConfiguration_CachedPerRun(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/4928/products/CH_01/configuration", r.URL.Path)
		calls.Add(1)
		w.Write([]byte(`{"enabled":true,"features":[{"code":"BASE","options":[{"code":"b1"}]}]}`))
	}))

	ctx := context.Background()
	first, err := client.GetConfiguration(ctx, "CH_01")
	require.NoError(t, err)
	second, err := client.GetConfiguration(ctx, "CH_01")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, first.Enabled)
	require.Len(t, first.Features, 1)
	assert.Equal(t, "BASE", first.Features[0].Code)
}

func TestResetCache_ForcesRefetch(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"enabled":true}`))
	}))

	ctx := context.Background()
	_, err := client.GetConfiguration(ctx, "CH_01")
	require.NoError(t, err)

	client.ResetCache()

	// A new run must see the upstream catalog again, not last run's snapshot
	_, err = client.GetConfiguration(ctx, "CH_01")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetConfiguration_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetConfiguration(context.Background(), "MISSING")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "MISSING", fetchErr.Product)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFilterBySubstring(t *testing.T) {
	products := []Product{{Code: "SOFA_123"}, {Code: "CHAIR_01"}, {Code: "sofa_deluxe"}}

	assert.Len(t, FilterBySubstring(products, ""), 3)
	assert.Len(t, FilterBySubstring(products, "sofa"), 2)
	assert.Empty(t, FilterBySubstring(products, "table"))
}
