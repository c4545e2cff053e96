package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const statusHealthy = "healthy"

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
}

// HealthHandler reports liveness without contacting the catalog.
type HealthHandler struct {
	service string
	version string
}

// NewHealthHandler creates a health handler identifying the running build.
// Empty values are omitted from the response.
func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{service: service, version: version}
}

// Handle serves GET /health.
func (h *HealthHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  statusHealthy,
		Service: h.service,
		Version: h.version,
	})
}
