package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namiksejdovic1-tech/price-master-bih/config"
	"github.com/namiksejdovic1-tech/price-master-bih/models"
	"github.com/namiksejdovic1-tech/price-master-bih/storage"
)

var testSources = []string{"Domod", "eKupi"}

// fakeScanner returns one match and one fallback per scan, honoring
// the never-fails contract.
type fakeScanner struct {
	calls int
}

func (f *fakeScanner) Scan(ctx context.Context, req models.ScanRequest) models.ScanResult {
	f.calls++
	return models.ScanResult{
		"Domod": {Source: "Domod", Price: req.ReferencePrice * 0.9, Status: models.StatusMatch, Similarity: 95.0, Title: req.ProductName},
		"eKupi": {Source: "eKupi", Price: req.ReferencePrice * 1.1, Status: models.StatusFallback, Reason: "No results"},
	}
}

func testRouter(t *testing.T) (*gin.Engine, *storage.ProductStore, *fakeScanner) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	store, err := storage.NewProductStore(path)
	require.NoError(t, err)

	scanner := &fakeScanner{}
	handler := NewHandler(store, scanner, storage.NewCSVExporter(testSources), nil)

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	return SetupRouter(cfg, handler), store, scanner
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAddProduct(t *testing.T) {
	router, store, scanner := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products",
		`{"name": "Samsung Galaxy A54 128GB", "price": 649.0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Product models.Product `json:"product"`
		Stats   models.Stats   `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Product.ID)
	assert.Len(t, resp.Product.Competitors, 2)
	assert.Equal(t, 1, scanner.calls)
	assert.Equal(t, 1, resp.Stats.Total)

	// The scan result is persisted verbatim.
	stored, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMatch, stored.Competitors["Domod"].Status)
	assert.Equal(t, "No results", stored.Competitors["eKupi"].Reason)
}

func TestAddProductValidation(t *testing.T) {
	router, _, scanner := testRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name": "", "price": 100}`},
		{"missing name", `{"price": 100}`},
		{"zero price", `{"name": "x", "price": 0}`},
		{"negative price", `{"name": "x", "price": -5}`},
		{"not json", `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	// Invalid requests never reach the scanner.
	assert.Zero(t, scanner.calls)
}

func TestRefreshProduct(t *testing.T) {
	router, store, scanner := testRouter(t)

	added, err := store.Add(models.Product{Name: "Tefal Toster TT3650", MyPrice: 89})
	require.NoError(t, err)
	require.Empty(t, added.Competitors)

	w := doJSON(t, router, http.MethodPost, "/api/products/1/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, scanner.calls)

	stored, err := store.Get(added.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Competitors, 2)
}

func TestRefreshProductNotFound(t *testing.T) {
	router, _, scanner := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products/42/refresh", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, scanner.calls)

	w = doJSON(t, router, http.MethodPost, "/api/products/abc/refresh", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	router, store, _ := testRouter(t)

	added, err := store.Add(models.Product{Name: "LG Klima S09ET", MyPrice: 1199})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodDelete, "/api/products/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	_, err = store.Get(added.ID)
	assert.ErrorIs(t, err, storage.ErrProductNotFound)

	w = doJSON(t, router, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProducts(t *testing.T) {
	router, _, _ := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products",
		`{"name": "Bosch Usisivač BGL3HYG", "price": 299.0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []struct {
			models.Product
			MinCompetitorPrice float64 `json:"min_competitor_price"`
			IsBestPrice        bool    `json:"is_best_price"`
		} `json:"products"`
		Stats models.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Products, 1)
	// fakeScanner's match is at 90% of the reference price.
	assert.InDelta(t, 269.1, resp.Products[0].MinCompetitorPrice, 0.001)
	assert.False(t, resp.Products[0].IsBestPrice)
	assert.Equal(t, models.Stats{Total: 1, Wins: 0, Opportunities: 1}, resp.Stats)
}

func TestGetStats(t *testing.T) {
	router, _, _ := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, models.Stats{}, stats)
}

func TestGetSuggestions(t *testing.T) {
	router, _, _ := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products",
		`{"name": "Philips TV 55PUS8808", "price": 1299.0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/suggestions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "suggestions")
}

func TestExportCSV(t *testing.T) {
	router, _, _ := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products",
		`{"name": "Samsung Galaxy A54 128GB", "price": 649.0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Samsung Galaxy A54 128GB")
	assert.Contains(t, w.Body.String(), "Domod")
}
