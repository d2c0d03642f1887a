package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func loadTestFixture(t *testing.T) *fixture {
	t.Helper()
	path := filepath.Join("testdata", "objects.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return &fx
}

func newMux(fx *fixture) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/objects", listObjectsHandler(testLogger(), fx))
	mux.HandleFunc("GET /api/v1/objects/{id}", getObjectHandler(testLogger(), fx))
	mux.HandleFunc("GET /api/v1/objects/{id}/premises", listPremisesHandler(testLogger(), fx))
	return mux
}

func TestLoadFixture(t *testing.T) {
	fx := loadTestFixture(t)
	if len(fx.Objects) == 0 {
		t.Fatal("expected objects in fixture")
	}
	for _, o := range fx.Objects {
		if o.Name == "" {
			t.Errorf("object %d has empty name", o.ID)
		}
	}
}

func TestListObjects(t *testing.T) {
	fx := loadTestFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects", http.NoBody)
	w := httptest.NewRecorder()

	newMux(fx).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp objectsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != len(fx.Objects) {
		t.Errorf("total=%d, want %d", resp.Total, len(fx.Objects))
	}
	// List responses carry no aggregates.
	for _, o := range resp.Objects {
		if len(o.Premises) != 0 {
			t.Errorf("object %d carries premises in list response", o.ID)
		}
	}
}

func TestGetObject(t *testing.T) {
	fx := loadTestFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/1", http.NoBody)
	w := httptest.NewRecorder()

	newMux(fx).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var obj fixtureObject
	if err := json.NewDecoder(w.Body).Decode(&obj); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if obj.ID != 1 {
		t.Errorf("id=%d, want 1", obj.ID)
	}
	if len(obj.Premises) == 0 {
		t.Error("expected premises in object aggregate")
	}
}

func TestGetObject_NotFound(t *testing.T) {
	fx := loadTestFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/999", http.NoBody)
	w := httptest.NewRecorder()

	newMux(fx).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListPremises_AllUnits(t *testing.T) {
	fx := loadTestFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/1/premises", http.NoBody)
	w := httptest.NewRecorder()

	newMux(fx).ServeHTTP(w, req)

	var resp premisesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != len(fx.Objects[0].Premises) {
		t.Errorf("total=%d, want %d", resp.Total, len(fx.Objects[0].Premises))
	}
}

func TestListPremises_StatusFilter(t *testing.T) {
	fx := loadTestFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/1/premises?status=sold", http.NoBody)
	w := httptest.NewRecorder()

	newMux(fx).ServeHTTP(w, req)

	var resp premisesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total == 0 {
		t.Error("expected sold units in fixture")
	}
	for _, raw := range resp.Premises {
		var p premisesStatus
		_ = json.Unmarshal(raw, &p)
		if p.Status != "sold" {
			t.Errorf("status=%s, want sold", p.Status)
		}
	}
	if resp.Total >= len(fx.Objects[0].Premises) {
		t.Error("expected filter to reduce results")
	}
}

func TestListPremises_Pagination(t *testing.T) {
	fx := loadTestFixture(t)
	total := len(fx.Objects[0].Premises)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/1/premises?limit=2&offset=0", http.NoBody)
	w := httptest.NewRecorder()
	newMux(fx).ServeHTTP(w, req)

	var resp premisesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Premises) != 2 {
		t.Errorf("premises=%d, want 2", len(resp.Premises))
	}
	if resp.Total != total {
		t.Errorf("total=%d, want %d", resp.Total, total)
	}
}

func TestListPremises_OffsetPastEnd(t *testing.T) {
	fx := loadTestFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/1/premises?offset=100", http.NoBody)
	w := httptest.NewRecorder()
	newMux(fx).ServeHTTP(w, req)

	var resp premisesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Premises == nil {
		t.Error("expected empty array, got nil")
	}
	if len(resp.Premises) != 0 {
		t.Errorf("premises=%d, want 0", len(resp.Premises))
	}
}

func TestListPremises_UnknownObject(t *testing.T) {
	fx := loadTestFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/999/premises", http.NoBody)
	w := httptest.NewRecorder()
	newMux(fx).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
