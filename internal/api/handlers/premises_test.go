package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovbilous/priceboard/internal/api/handlers"
	"github.com/ovbilous/priceboard/internal/store"
	"github.com/ovbilous/priceboard/internal/store/storetest"
)

func newPremisesAPI(t *testing.T, s *storetest.Store, maxRows int) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	handlers.RegisterPremisesRoutes(api, handlers.NewPremisesHandler(s, maxRows))
	return api
}

func TestBulkUpsertPremises(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	obj := newObject(t, s, "Harbor View")
	api := newPremisesAPI(t, s, 0)

	resp := api.Post("/api/v1/objects/1/premises:bulk", map[string]any{
		"rows": []map[string]any{
			{
				"Premises ID":        "a-1",
				"Number":             1,
				"Number of unit":     1,
				"Floor":              2,
				"Estimated area, m2": 44.5,
				"Status":             "Available",
			},
			{
				"Number":         2,
				"Number of unit": 2,
				"Floor":          2,
				"Status":         "sold",
			},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"written":2`)

	units, total, err := s.ListPremises(context.Background(), obj.ID, &store.PremisesQuery{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	assert.Equal(t, "a-1", units[0].PremisesID)
	assert.NotEmpty(t, units[1].PremisesID, "missing premises id must be generated")

	// Re-uploading the same sheet updates in place.
	resp = api.Post("/api/v1/objects/1/premises:bulk", map[string]any{
		"rows": []map[string]any{
			{"Premises ID": "a-1", "Floor": 5},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	units, total, err = s.ListPremises(context.Background(), obj.ID, &store.PremisesQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, u := range units {
		if u.PremisesID == "a-1" {
			assert.Equal(t, 5, u.Floor)
		}
	}
}

func TestBulkUpsertPremises_Errors(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	newObject(t, s, "Harbor View")
	api := newPremisesAPI(t, s, 1)

	// Unknown object.
	resp := api.Post("/api/v1/objects/42/premises:bulk", map[string]any{
		"rows": []map[string]any{{"Number": 1}},
	})
	require.Equal(t, http.StatusNotFound, resp.Code)

	// Row cap exceeded.
	resp = api.Post("/api/v1/objects/1/premises:bulk", map[string]any{
		"rows": []map[string]any{{"Number": 1}, {"Number": 2}},
	})
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestListPremises(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	newPricedObject(t, s)
	api := newPremisesAPI(t, s, 0)

	resp := api.Get("/api/v1/objects/1/premises")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":3`)

	resp = api.Get("/api/v1/objects/1/premises?status=sold")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":1`)
	assert.Contains(t, resp.Body.String(), `"r-1"`)

	resp = api.Get("/api/v1/objects/1/premises?limit=1&offset=1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":3`)
	assert.Contains(t, resp.Body.String(), `"limit":1`)
}
