package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovbilous/priceboard/internal/api/handlers"
	"github.com/ovbilous/priceboard/internal/engine"
	"github.com/ovbilous/priceboard/internal/store"
	"github.com/ovbilous/priceboard/internal/store/storetest"
)

func newEngineAPI(t *testing.T, s *storetest.Store, opts ...engine.Option) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	handlers.RegisterEngineRoutes(api, handlers.NewEngineHandler(engine.New(s, opts...)))
	return api
}

func TestGetPrice(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	newPricedObject(t, s)
	api := newEngineAPI(t, s)

	// spread = 1.2/0.8 - 1 = 0.5, so 1000 * 1.5 clamps to 1200.
	resp := api.Get("/api/v1/objects/1/price?contribution=0.5")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"price":"1200.00"`)
	assert.Contains(t, resp.Body.String(), `"onboarding_spread":0.5`)

	resp = api.Get("/api/v1/objects/42/price")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetChessboard(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	newPricedObject(t, s)
	api := newEngineAPI(t, s)

	resp := api.Get("/api/v1/objects/1/chessboard?metric=number")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"floors":[1,2]`)
	assert.Contains(t, body, `"units":[1,2]`)
	assert.Contains(t, body, `"metric":"number"`)

	resp = api.Get("/api/v1/objects/1/chessboard?metric=scoring")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"metric":"scoring"`)

	resp = api.Get("/api/v1/objects/42/chessboard")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReprice(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	obj := newPricedObject(t, s)
	api := newEngineAPI(t, s)

	resp := api.Post("/api/v1/objects/1/reprice", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"rows"`)
	assert.Contains(t, body, `"soldout_ratio"`)
	assert.Contains(t, body, `"persisted":false`)

	// Persisting writes prices back.
	resp = api.Post("/api/v1/objects/1/reprice", map[string]any{"persist": true})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"persisted":true`)

	units, _, err := s.ListPremises(context.Background(), obj.ID, &store.PremisesQuery{})
	require.NoError(t, err)
	for _, u := range units {
		assert.Greater(t, u.PricePerMeter, 0.0)
	}
}

func TestReprice_Errors(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	newObject(t, s, "Configless")
	api := newEngineAPI(t, s)

	// Object without a pricing config cannot be scored.
	resp := api.Post("/api/v1/objects/1/reprice", map[string]any{})
	require.Equal(t, http.StatusConflict, resp.Code)

	resp = api.Post("/api/v1/objects/42/reprice", map[string]any{})
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReprice_DailyLimit(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	newPricedObject(t, s)
	api := newEngineAPI(t, s,
		engine.WithRateLimiter(engine.NewRateLimiter(100, 10, 1)),
	)

	resp := api.Post("/api/v1/objects/1/reprice", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Post("/api/v1/objects/1/reprice", map[string]any{})
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
}
