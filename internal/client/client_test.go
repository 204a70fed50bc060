package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MereWhiplash/wordspace/internal/apitypes"
	"github.com/MereWhiplash/wordspace/internal/client"
	"github.com/MereWhiplash/wordspace/internal/types"
)

func TestClient_Visualize_Success(t *testing.T) {
	score := 0.75
	expected := []types.Record{
		{Word: "king", Coordinates: types.Coordinates{1, 0, 0}, Cluster: 0, Similarity: &score},
		{Word: "apple", Coordinates: types.Coordinates{-1, 0.5, 0}, Cluster: 1},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/visualize" {
			t.Errorf("expected /v1/visualize, got %s", r.URL.Path)
		}

		var req apitypes.VisualizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.CentralWord != "king" {
			t.Errorf("expected central word 'king', got %q", req.CentralWord)
		}
		if len(req.Words) != 3 {
			t.Errorf("expected 3 words, got %d", len(req.Words))
		}

		json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	c := client.New(server.URL + "/")
	records, err := c.Visualize(context.Background(), []string{"king", "apple", "xyzzy"}, "king")
	if err != nil {
		t.Fatalf("Visualize failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Similarity == nil || *records[0].Similarity != 0.75 {
		t.Errorf("expected similarity 0.75, got %v", records[0].Similarity)
	}
	if records[1].Similarity != nil {
		t.Errorf("expected no similarity, got %v", *records[1].Similarity)
	}
	if records[1].Coordinates != expected[1].Coordinates {
		t.Errorf("expected coordinates %v, got %v", expected[1].Coordinates, records[1].Coordinates)
	}
}

func TestClient_Visualize_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(apitypes.ErrorResponse{
			Error: "invalid request: a central word and at least 3 other words are required",
		})
	}))
	defer server.Close()

	c := client.New(server.URL)
	_, err := c.Visualize(context.Background(), []string{"a"}, "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, types.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
	if err.Error() != "invalid request: a central word and at least 3 other words are required" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestClient_Visualize_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(apitypes.ErrorResponse{Error: "internal error"})
	}))
	defer server.Close()

	c := client.New(server.URL)
	_, err := c.Visualize(context.Background(), []string{"a", "b", "c"}, "a")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, types.ErrInvalidRequest) {
		t.Error("server errors should not look like validation errors")
	}
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected /health, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(apitypes.HealthResponse{
			Status: "ok",
			Cache:  &apitypes.CacheStats{Hits: 4, Misses: 1, Entries: 1},
		})
	}))
	defer server.Close()

	c := client.New(server.URL)
	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", health.Status)
	}
	if health.Cache == nil || health.Cache.Hits != 4 {
		t.Errorf("unexpected cache stats: %+v", health.Cache)
	}
}

func TestClient_Health_Unhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(apitypes.HealthResponse{Status: "unhealthy", Error: "cache down"})
	}))
	defer server.Close()

	c := client.New(server.URL)
	health, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if health == nil || health.Status != "unhealthy" {
		t.Errorf("expected unhealthy status to be returned, got %+v", health)
	}
}
