// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/MereWhiplash/wordspace/internal/apitypes"
	"github.com/MereWhiplash/wordspace/internal/service"
	"github.com/MereWhiplash/wordspace/internal/types"
)

// Handlers holds HTTP handler dependencies
type Handlers struct {
	svc         *service.Service
	healthCheck func(ctx context.Context) error
	cacheStats  func(ctx context.Context) apitypes.CacheStats
	logger      *log.Logger
}

// NewHandlers creates new API handlers
func NewHandlers(svc *service.Service, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{svc: svc, logger: logger}
}

// SetHealthCheck sets the dependency check run by the health endpoint
func (h *Handlers) SetHealthCheck(fn func(ctx context.Context) error) {
	h.healthCheck = fn
}

// SetCacheStats sets the source of the cache figures in the health response
func (h *Handlers) SetCacheStats(fn func(ctx context.Context) apitypes.CacheStats) {
	h.cacheStats = fn
}

// Routes registers the API routes on r
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Post("/get_embeddings", h.Visualize)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/visualize", h.Visualize)
	})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, apitypes.ErrorResponse{Error: msg})
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := apitypes.HealthResponse{Status: "ok"}
	if h.cacheStats != nil {
		stats := h.cacheStats(r.Context())
		resp.Cache = &stats
	}

	if h.healthCheck != nil {
		if err := h.healthCheck(r.Context()); err != nil {
			resp.Status = "unhealthy"
			resp.Error = err.Error()
			h.respondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Visualize handles POST /v1/visualize and POST /get_embeddings
func (h *Handlers) Visualize(w http.ResponseWriter, r *http.Request) {
	var req apitypes.VisualizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	records, err := h.svc.Compute(r.Context(), req.Words, req.CentralWord)
	if err != nil {
		if errors.Is(err, types.ErrInvalidRequest) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("visualization failed", "err", err, "request_id", GetRequestID(r.Context()))
		h.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if records == nil {
		records = []types.Record{}
	}
	h.respondJSON(w, http.StatusOK, apitypes.VisualizeResponse(records))
}
