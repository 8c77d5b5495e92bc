package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/clinicsite/internal/client/services"
)

type HealthResponse struct {
	Status        string `json:"status"`
	Authenticated bool   `json:"authenticated"`
}

type HealthHandler struct {
	auth services.AuthService
}

func NewHealthHandler(auth services.AuthService) *HealthHandler {
	return &HealthHandler{auth: auth}
}

// Handle reports liveness. It never calls the CMS.
func (h *HealthHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Authenticated: h.auth.IsAuthenticated(c.Request().Context()),
	})
}
