package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skip-checkout/catalog"
	"skip-checkout/models"
)

const skipsPayload = `[
  {"id":17933,"size":4,"hire_period_days":14,"transport_cost":null,"per_tonne_cost":null,"price_before_vat":278,"vat":20,"postcode":"NR32","area":"","forbidden":false,"created_at":"2025-04-03T13:51:46.897146","updated_at":"2025-04-07T13:16:52.813","allowed_on_road":true,"allows_heavy_waste":true},
  {"id":17939,"size":40,"hire_period_days":14,"transport_cost":null,"per_tonne_cost":null,"price_before_vat":877,"vat":20,"postcode":"NR32","area":"","forbidden":true,"created_at":"2025-04-03T13:51:46.897146","updated_at":"2025-04-07T13:16:52.813","allowed_on_road":false,"allows_heavy_waste":false}
]`

func TestCatalogAPILoaderDecodesSkips(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"postcode": r.URL.Query().Get("postcode"),
			"area":     r.URL.Query().Get("area"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(skipsPayload))
	}))
	defer server.Close()

	loader := NewCatalogAPILoader(server.URL+"/api/skips/by-location", 2*time.Second, 0)
	skips, err := loader.Load(context.Background(), models.Location{Postcode: "NR32", Area: "Lowestoft"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"postcode": "NR32", "area": "Lowestoft"}, gotQuery)
	require.Len(t, skips, 2)
	assert.Equal(t, 17933, skips[0].ID)
	assert.Equal(t, int64(278), skips[0].PriceBeforeVAT)
	assert.Equal(t, 20, skips[0].VAT)
	assert.True(t, skips[0].AllowsHeavyWaste)
	assert.Nil(t, skips[0].TransportCost)
	assert.True(t, skips[1].Forbidden)
	assert.False(t, skips[1].AllowedOnRoad)
}

func TestCatalogAPILoaderFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"not an array": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"not found"}`))
		},
		"truncated": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":1,`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()

			loader := NewCatalogAPILoader(server.URL, time.Second, 0)
			_, err := loader.Load(context.Background(), models.Location{Postcode: "NR32"})
			assert.Error(t, err)

			snap, status := catalog.LoadOrEmpty(context.Background(), loader, models.Location{Postcode: "NR32"})
			assert.Equal(t, catalog.StatusFailed, status)
			assert.Equal(t, 0, snap.Len())
		})
	}
}

func TestCatalogAPILoaderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	loader := NewCatalogAPILoader(addr, time.Second, 0)
	_, err := loader.Load(context.Background(), models.Location{})
	assert.Error(t, err)
}

func TestCatalogAPILoaderHonoursCancelledContext(t *testing.T) {
	loader := NewCatalogAPILoader("http://127.0.0.1:1", time.Second, 0.001)
	// Drain the single burst token so the next Wait must block on the context
	require.True(t, loader.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loader.Load(ctx, models.Location{})
	assert.Error(t, err)
}
