// Package handlers provides HTTP handlers for the simulation engine.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/quantfolio/frontier/internal/modules/optimization"
	"github.com/rs/zerolog"
)

// Defaults supplies the values applied when a request omits a field.
type Defaults struct {
	RiskFreeRate float64
	Trials       int
	Seed         int64
}

// Handler handles optimization HTTP requests
type Handler struct {
	service  *optimization.Service
	defaults Defaults
	log      zerolog.Logger
}

// NewHandler creates a new optimization handler
func NewHandler(service *optimization.Service, defaults Defaults, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		defaults: defaults,
		log:      log.With().Str("handler", "optimization").Logger(),
	}
}

// apiRequest mirrors optimization.Request with pointer fields so omitted
// values fall back to the configured defaults instead of zero.
type apiRequest struct {
	RiskFreeRate *float64 `json:"risk_free_rate"`
	Trials       *int     `json:"num_port"`
	Seed         *int64   `json:"seed"`
}

// HandleOptimize handles POST /api/optimize
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var body apiRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	req := optimization.Request{
		RiskFreeRate: h.defaults.RiskFreeRate,
		Trials:       h.defaults.Trials,
		Seed:         h.defaults.Seed,
	}
	if body.RiskFreeRate != nil {
		req.RiskFreeRate = *body.RiskFreeRate
	}
	if body.Trials != nil {
		req.Trials = *body.Trials
	}
	if body.Seed != nil {
		req.Seed = *body.Seed
	}

	summary, err := h.service.Optimize(r.Context(), req)
	if err != nil {
		switch {
		case optimization.IsInputError(err):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case optimization.IsDataError(err):
			h.writeError(w, http.StatusUnprocessableEntity, "Dataset problem: "+err.Error())
		default:
			h.log.Error().Err(err).Msg("Optimization failed")
			h.writeError(w, http.StatusInternalServerError, "Optimization failed: "+err.Error())
		}
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
