package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovbilous/priceboard/internal/api/handlers"
	"github.com/ovbilous/priceboard/internal/store/storetest"
)

func newConfigsAPI(t *testing.T, s *storetest.Store) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	handlers.RegisterConfigRoutes(api, handlers.NewConfigsHandler(s))
	return api
}

func TestAppendPricingConfig(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	newObject(t, s, "Harbor View")
	api := newConfigsAPI(t, s)

	content := map[string]any{
		"dynamicConfig": map[string]any{
			"importantFields": map[string]bool{"floor": true},
			"weights":         map[string]float64{"floor": 1},
		},
		"staticConfig": map[string]any{
			"sigma":                     1,
			"similarityThreshold":       0.5,
			"minimum_liq_refusal_price": 0.8,
			"maximum_liq_refusal_price": 1.2,
		},
		"ranging": map[string]any{},
	}

	resp := api.Post("/api/v1/objects/1/pricing-configs", content)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"reo_id":1`)

	// Revisions append, never replace.
	resp = api.Post("/api/v1/objects/1/pricing-configs", content)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = api.Get("/api/v1/objects/1/pricing-configs")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":2`)

	// Unknown object.
	resp = api.Post("/api/v1/objects/42/pricing-configs", content)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDistributionConfigs(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	api := newConfigsAPI(t, s)

	resp := api.Post("/api/v1/distribution-configs", map[string]any{
		"name":          "center heavy",
		"function_type": "Gaussian",
		"params":        map[string]any{"mean": 0.5, "stdDev": 0.2},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"center heavy"`)

	resp = api.Post("/api/v1/distribution-configs", map[string]any{
		"name":          "twin peaks",
		"function_type": "Bimodal",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = api.Get("/api/v1/distribution-configs")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":2`)
	assert.Contains(t, resp.Body.String(), `"Gaussian"`)
	assert.Contains(t, resp.Body.String(), `"Bimodal"`)
}

func TestCreateDistributionConfig_Invalid(t *testing.T) {
	t.Parallel()

	api := newConfigsAPI(t, storetest.New())

	resp := api.Post("/api/v1/distribution-configs", map[string]any{
		"name":          "bad curve",
		"function_type": "Triangular",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
