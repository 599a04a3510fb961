package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("database not configured")

// Version is reported by the status endpoint. Overridden at build time with -ldflags.
var Version = "0.1.0"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// StatusResponse describes the running service
type StatusResponse struct {
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	Policies    []string `json:"policies"`
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PolicyLister exposes the registered authorization policy names
type PolicyLister interface {
	Names() []string
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	db          HealthChecker
	policies    PolicyLister
	environment string
	logger      *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db HealthChecker, policies PolicyLister, environment string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		policies:    policies,
		environment: environment,
		logger:      logger,
	}
}

// HandleHealth handles GET /healthz
// Liveness only; always 200 while the process serves requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleReadiness handles GET /readyz
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	if err := h.checkDatabase(ctx); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		checks["database"] = "unhealthy"
		allHealthy = false
	} else {
		checks["database"] = "healthy"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, utils.SuccessResponse{Data: response}); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

// HandleStatus handles GET /api/v1/status
func (h *HealthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	policies := []string{}
	if h.policies != nil {
		policies = h.policies.Names()
	}

	writeOK(w, StatusResponse{
		Version:     Version,
		Environment: h.environment,
		Policies:    policies,
	}, h.logger)
}

// checkDatabase checks database connectivity
func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	if h.db == nil {
		return errNoDatabase
	}
	return h.db.HealthCheck(ctx)
}
