package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovbilous/priceboard/internal/api/handlers"
	"github.com/ovbilous/priceboard/internal/store/storetest"
)

func newObjectsAPI(t *testing.T, s *storetest.Store) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	handlers.RegisterObjectRoutes(api, handlers.NewObjectsHandler(s))
	return api
}

func TestCreateObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "creates object with defaults",
			body:       map[string]any{"name": "Harbor View"},
			wantStatus: http.StatusCreated,
			wantBody:   `"name":"Harbor View"`,
		},
		{
			name: "creates object with area method",
			body: map[string]any{
				"name":            "Docklands",
				"oversold_method": "area",
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"oversold_method":"area"`,
		},
		{
			name:       "rejects empty name",
			body:       map[string]any{"name": ""},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "rejects unknown oversold method",
			body: map[string]any{
				"name":            "Bad",
				"oversold_method": "volume",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newObjectsAPI(t, storetest.New())

			resp := api.Post("/api/v1/objects", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestGetObject(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	obj := newPricedObject(t, s)
	api := newObjectsAPI(t, s)

	resp := api.Get("/api/v1/objects/1")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"name":"Riverside"`)
	assert.Contains(t, body, `"premises"`)
	assert.Contains(t, body, `"r-1"`)
	assert.Contains(t, body, `"income_plans"`)
	assert.Contains(t, body, `"pricing_configs"`)

	_ = obj

	resp = api.Get("/api/v1/objects/99")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListObjects(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	newObject(t, s, "First")
	newObject(t, s, "Second")
	api := newObjectsAPI(t, s)

	resp := api.Get("/api/v1/objects")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":2`)
}

func TestUpdateObject(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	obj := newObject(t, s, "Before")
	api := newObjectsAPI(t, s)

	resp := api.Put("/api/v1/objects/1", map[string]any{
		"name":            "After",
		"oversold_method": "area",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"After"`)

	got, err := s.GetObject(context.Background(), obj.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)

	resp = api.Put("/api/v1/objects/42", map[string]any{"name": "Ghost"})
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteObject(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	obj := newObject(t, s, "Doomed")
	api := newObjectsAPI(t, s)

	resp := api.Delete("/api/v1/objects/1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"deleted"`)

	_, err := s.GetObject(context.Background(), obj.ID)
	require.Error(t, err)
}
