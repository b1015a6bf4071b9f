package handlers

import (
	"net/http"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/api/response"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
	piService     *service.PiService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, piService *service.PiService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
		piService:     piService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string       `json:"status"`
	Database      string       `json:"database"`
	PendingWrites []model.Mode `json:"pendingWrites,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity.
// With persistence disabled the service runs from memory alone and still
// reports healthy.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.systemService.PersistenceEnabled() {
		response.RespondJSON(w, http.StatusOK, HealthResponse{
			Status:   "healthy",
			Database: "disabled",
		})
		return
	}

	pending := h.piService.PendingModes()

	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		resp := HealthResponse{
			Status:        "unhealthy",
			Database:      "disconnected",
			PendingWrites: pending,
			Error:         err.Error(),
		}
		response.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	// System is healthy
	resp := HealthResponse{
		Status:        "healthy",
		Database:      "connected",
		PendingWrites: pending,
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

// VersionInfoResponse represents the version check response containing the
// application version and feature availability.
type VersionInfoResponse struct {
	AppVersion string          `json:"app_version"`
	Features   map[string]bool `json:"features"`
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	version, err := h.systemService.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetVersionInfo.Error(), err.Error())
		return
	}

	resp := VersionInfoResponse{
		AppVersion: version.AppVersion,
		Features:   version.Features,
	}

	response.RespondJSON(w, http.StatusOK, resp)
}
