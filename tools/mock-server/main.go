// Package main implements a mock priceboard API server for local development.
// It serves canned objects and premises from a JSON fixture so pbctl and
// frontend work can proceed without a database or a running engine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type fixtureObject struct {
	ID                 int64             `json:"id"`
	Name               string            `json:"name"`
	Status             string            `json:"status"`
	CurrentPricePerSqm string            `json:"current_price_per_sqm"`
	OversoldMethod     string            `json:"oversold_method"`
	Premises           []json.RawMessage `json:"premises"`
}

type premisesStatus struct {
	Status string `json:"status"`
}

type fixture struct {
	Objects []fixtureObject `json:"objects"`
}

type objectsResponse struct {
	Objects []fixtureObject `json:"objects"`
	Total   int             `json:"total"`
}

type premisesResponse struct {
	Premises []json.RawMessage `json:"premises"`
	Total    int               `json:"total"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/objects.json", "path to objects fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "objects", len(fx.Objects))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/objects", listObjectsHandler(logger, fx))
	mux.HandleFunc("GET /api/v1/objects/{id}", getObjectHandler(logger, fx))
	mux.HandleFunc("GET /api/v1/objects/{id}/premises", listPremisesHandler(logger, fx))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock priceboard server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func listObjectsHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		// The list endpoint returns objects without their aggregates.
		objects := make([]fixtureObject, len(fx.Objects))
		for i, o := range fx.Objects {
			o.Premises = nil
			objects[i] = o
		}
		writeJSON(w, http.StatusOK, objectsResponse{Objects: objects, Total: len(objects)})
		logger.Info("list objects", "total", len(objects))
	}
}

func getObjectHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, ok := findObject(fx, r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "object not found"})
			return
		}
		writeJSON(w, http.StatusOK, obj)
		logger.Info("get object", "reo_id", obj.ID)
	}
}

func listPremisesHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, ok := findObject(fx, r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "object not found"})
			return
		}

		status := strings.ToLower(r.URL.Query().Get("status"))

		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}
		offset := 0
		if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
			offset = v
		}

		var matched []json.RawMessage
		for _, raw := range obj.Premises {
			var p premisesStatus
			//nolint:errcheck // fixture data is trusted; status extraction is best-effort
			json.Unmarshal(raw, &p)
			if status == "" || strings.ToLower(p.Status) == status {
				matched = append(matched, raw)
			}
		}

		total := len(matched)

		if offset >= len(matched) {
			matched = nil
		} else {
			end := min(offset+limit, len(matched))
			matched = matched[offset:end]
		}

		// Return empty array instead of null when no results.
		if matched == nil {
			matched = []json.RawMessage{}
		}

		writeJSON(w, http.StatusOK, premisesResponse{Premises: matched, Total: total})
		logger.Info("list premises",
			"reo_id", obj.ID, "status", status,
			"matched", total, "returned", len(matched),
			"offset", offset, "limit", limit,
		)
	}
}

func findObject(fx *fixture, id string) (*fixtureObject, bool) {
	reoID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, false
	}
	for i := range fx.Objects {
		if fx.Objects[i].ID == reoID {
			return &fx.Objects[i], true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
