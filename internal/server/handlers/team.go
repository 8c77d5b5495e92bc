// Package handlers implements the site's JSON API on top of the core
// services.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/client/services"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// TeamMemberView is the public shape of a team member.
type TeamMemberView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// TeamListResponse is returned by GET /api/team. Available is false when
// the CMS could not be reached; Data is then empty, never null.
type TeamListResponse struct {
	Available bool             `json:"available"`
	Data      []TeamMemberView `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type TeamHandler struct {
	auth services.AuthService
	team services.TeamService
	log  logging.Logger
}

func NewTeamHandler(auth services.AuthService, team services.TeamService, log logging.Logger) *TeamHandler {
	return &TeamHandler{auth: auth, team: team, log: log.With("module", "team_handler")}
}

// dropExpired runs the credential expiry check, so an expired token is
// discarded instead of being sent to the CMS.
func (h *TeamHandler) dropExpired(ctx context.Context) {
	h.auth.IsAuthenticated(ctx)
}

func (h *TeamHandler) view(m *models.TeamMember) TeamMemberView {
	v := TeamMemberView{ID: m.ID, Name: m.Name, Description: m.Description}
	if m.Image != "" {
		v.ImageURL = h.team.ImageURL(m.Image)
	}
	return v
}

// List handles GET /api/team.
func (h *TeamHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	h.dropExpired(ctx)
	items, err := h.team.TeamMembers(ctx)
	if err != nil {
		h.log.Warn(ctx, "team unavailable", "error", err)
		return c.JSON(http.StatusOK, TeamListResponse{Available: false, Data: []TeamMemberView{}})
	}

	data := make([]TeamMemberView, 0, len(items))
	for i := range items {
		data = append(data, h.view(&items[i]))
	}
	return c.JSON(http.StatusOK, TeamListResponse{Available: true, Data: data})
}

// Get handles GET /api/team/:id.
func (h *TeamHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "id must be an integer"})
	}

	ctx := c.Request().Context()
	h.dropExpired(ctx)
	m, err := h.team.TeamMemberByID(ctx, id)
	return h.member(c, m, err)
}

// Search handles GET /api/team/search?name=.
func (h *TeamHandler) Search(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name is required"})
	}

	ctx := c.Request().Context()
	h.dropExpired(ctx)
	m, err := h.team.TeamMemberByName(ctx, name)
	return h.member(c, m, err)
}

func (h *TeamHandler) member(c echo.Context, m *models.TeamMember, err error) error {
	if err != nil {
		h.log.Warn(c.Request().Context(), "team unavailable", "error", err)
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "team data unavailable"})
	}
	if m == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "team member not found"})
	}
	return c.JSON(http.StatusOK, h.view(m))
}
