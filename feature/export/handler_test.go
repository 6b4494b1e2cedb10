package export

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-exporter/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(api CatalogAPI) *fiber.App {
	svc := newTestService(api, baseConfig())
	app := fiber.New()
	feature := NewFeature(svc, nil, zap.NewNop())
	_ = feature.Load(app)
	return app
}

func TestHandleListProducts(t *testing.T) {
	api := &stubAPI{products: []catalog.Product{
		{Code: "SOFA_1", ProductType: "Production"},
		{Code: "DRAFT", ProductType: "Draft"},
	}}
	app := newTestApp(api)

	resp, err := app.Test(httptest.NewRequest("GET", "/export/products", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Products []catalog.Product `json:"products"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Products, 1)
	assert.Equal(t, "SOFA_1", payload.Products[0].Code)
}

func TestHandleRunExport(t *testing.T) {
	api := &stubAPI{configs: map[string]*catalog.Configuration{"CH_01": chairConfig()}}
	app := newTestApp(api)

	body := strings.NewReader(`{"products":["CH_01"],"frames":[1]}`)
	req := httptest.NewRequest("POST", "/export/", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cylindo_export.csv")

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 1+6) // header + six combinations
	assert.True(t, strings.HasPrefix(lines[0], "Product;ItemNumber;Frame;Size;ImageURL"))
}

func TestHandleRunExport_NoEligibleProducts(t *testing.T) {
	api := &stubAPI{}
	app := newTestApp(api)

	req := httptest.NewRequest("POST", "/export/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleListRuns_NotConfigured(t *testing.T) {
	app := newTestApp(&stubAPI{})

	resp, err := app.Test(httptest.NewRequest("GET", "/export/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
}
