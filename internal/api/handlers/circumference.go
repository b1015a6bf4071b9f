package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/api/request"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/api/response"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/auth"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/pi"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/service"
)

// incrementCacheControl lets a CDN absorb bursts of increment traffic.
const incrementCacheControl = "s-maxage=60, stale-while-revalidate=300"

// CircumferenceHandler handles requests for the sun's circumference and the
// π approximation it is derived from.
type CircumferenceHandler struct {
	piService  *service.PiService
	gate       auth.Gate
	production bool
}

// NewCircumferenceHandler creates a new CircumferenceHandler.
// The debug dump is only served when production is false.
func NewCircumferenceHandler(piService *service.PiService, gate auth.Gate, production bool) *CircumferenceHandler {
	return &CircumferenceHandler{
		piService:  piService,
		gate:       gate,
		production: production,
	}
}

// CircumferenceResponse is the body of a successful circumference request.
type CircumferenceResponse struct {
	Pi                string `json:"pi"`
	CurrentIterations int    `json:"currentIterations"`
	Circumference     string `json:"circumference"`
	Incremented       bool   `json:"incremented"`
	Reset             bool   `json:"reset,omitempty"`
}

// DumpEntry is the debug view of a single mode.
type DumpEntry struct {
	Pi             string `json:"pi"`
	IterationCount int    `json:"iterationCount"`
}

// DumpResponse is the body of a debug request.
type DumpResponse struct {
	Store      map[model.Mode]DumpEntry `json:"store"`
	InstanceID string                   `json:"instanceId"`
}

// Circumference handles GET requests that increment, read or reset a mode and
// return the resulting π approximation and derived circumference.
//
// Endpoint: GET /api/circumference
// Query parameters:
//   - mode: "efficient" (default) or "optimized"
//   - reset: "true" returns the mode to its initial state
//   - increment: "false" reads without advancing
//   - debug: "true" dumps every mode (not in production)
//
// Response: 200 OK with CircumferenceResponse, or DumpResponse for debug
// Error: 400 Bad Request for an unknown mode
// Error: 401 Unauthorized when the access gate denies the request
// Error: 500 Internal Server Error if computation fails
func (h *CircumferenceHandler) Circumference(w http.ResponseWriter, r *http.Request) {
	query := request.ParseCircumferenceQuery(r)

	if query.Debug && !h.production {
		h.dump(w, r)
		return
	}

	decision := h.gate.Evaluate(auth.RequestFrom(r))
	if !decision.Allowed {
		log.Printf("circumference: %v: %s", apperrors.ErrUnauthorized, decision.Reason)
		response.RespondError(w, http.StatusUnauthorized, "Unauthorized", decision.Reason)
		return
	}

	mode, err := query.Mode()
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid mode: "+query.RawMode, nil)
		return
	}

	var state model.ConvergenceState
	switch query.Operation {
	case request.OperationReset:
		state, err = h.piService.Reset(r.Context(), mode)
	case request.OperationRead:
		state, err = h.piService.Read(r.Context(), mode)
	default:
		state, err = h.piService.Increment(r.Context(), mode)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidMode) {
			response.RespondError(w, http.StatusBadRequest, "Invalid mode: "+query.RawMode, nil)
			return
		}
		log.Printf("circumference: %s of %s failed: %v", query.Operation, mode, err)
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute π", err.Error())
		return
	}

	_, circumference := pi.Circumference(state.Approximation, pi.SunRadiusKm)

	body := CircumferenceResponse{
		Pi:                state.PiFixed(),
		CurrentIterations: state.IterationCount,
		Circumference:     circumference,
		Incremented:       query.Operation == request.OperationIncrement,
		Reset:             query.Operation == request.OperationReset,
	}
	if body.Incremented {
		response.RespondCached(w, http.StatusOK, incrementCacheControl, body)
		return
	}
	response.RespondJSON(w, http.StatusOK, body)
}

func (h *CircumferenceHandler) dump(w http.ResponseWriter, r *http.Request) {
	states, err := h.piService.Dump(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDumpState.Error(), err.Error())
		return
	}

	store := make(map[model.Mode]DumpEntry, len(states))
	for mode, state := range states {
		store[mode] = DumpEntry{
			Pi:             state.Approximation.String(),
			IterationCount: state.IterationCount,
		}
	}

	response.RespondJSON(w, http.StatusOK, DumpResponse{
		Store:      store,
		InstanceID: h.piService.InstanceID(),
	})
}
