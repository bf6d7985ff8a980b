package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/TonyNguyenVn17/USF-Hackabull/internal/model"
	"github.com/TonyNguyenVn17/USF-Hackabull/internal/store"
	"github.com/TonyNguyenVn17/USF-Hackabull/pkg/logger"
	"github.com/TonyNguyenVn17/USF-Hackabull/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TeamHandler serves the team record CRUD surface. Teams are keyed by a
// caller-supplied ID; deleting a team leaves its members' team_id untouched.
type TeamHandler struct {
	store store.Store
}

// NewTeamHandler creates a team handler over the given store
func NewTeamHandler(st store.Store) *TeamHandler {
	return &TeamHandler{store: st}
}

// List returns all teams
func (h *TeamHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTeamOperation("list")

	defer prometheus.TrackStoreOperation("list")(time.Now())

	teams, ok := h.store.List(c.Request().Context(), store.TeamsCollection)
	if !ok {
		log.Error("Failed to list teams")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve teams",
		})
	}

	log.Info("Teams retrieved", zap.Int("count", len(teams)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Teams retrieved successfully",
		"data":    teams,
	})
}

// Get returns a single team by ID
func (h *TeamHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTeamOperation("get")
	id := c.Param("id")

	defer prometheus.TrackStoreOperation("get")(time.Now())

	doc, ok := h.store.Get(c.Request().Context(), store.TeamsCollection, id)
	if !ok {
		log.Warn("Team not found", zap.String("team_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Team not found",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Team retrieved successfully",
		"data":    doc,
	})
}

// Create stores a new team under the given ID; an existing ID is rejected
func (h *TeamHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTeamOperation("create")
	id := c.Param("id")

	var team model.Team
	if err := c.Bind(&team); err != nil {
		log.Error("Invalid request data", zap.String("team_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if _, exists := h.store.Get(c.Request().Context(), store.TeamsCollection, id); exists {
		log.Warn("Team ID already exists", zap.String("team_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Team ID already exists",
		})
	}

	team.ApplyDefaults()

	defer prometheus.TrackStoreOperation("set")(time.Now())

	doc := team.Document()
	if !h.store.Set(c.Request().Context(), store.TeamsCollection, id, doc) {
		log.Error("Failed to create team", zap.String("team_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create team",
		})
	}

	log.Info("Team created", zap.String("team_id", id), zap.String("name", team.Name))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Team %s created successfully", id),
		"data":    doc,
	})
}

// Update fully replaces an existing team
func (h *TeamHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTeamOperation("update")
	id := c.Param("id")

	var team model.Team
	if err := c.Bind(&team); err != nil {
		log.Error("Invalid request data", zap.String("team_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if _, exists := h.store.Get(c.Request().Context(), store.TeamsCollection, id); !exists {
		log.Warn("Team not found for update", zap.String("team_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Team not found",
		})
	}

	team.ApplyDefaults()

	defer prometheus.TrackStoreOperation("set")(time.Now())

	doc := team.Document()
	if !h.store.Set(c.Request().Context(), store.TeamsCollection, id, doc) {
		log.Error("Failed to update team", zap.String("team_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update team",
		})
	}

	log.Info("Team updated", zap.String("team_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Team %s updated successfully", id),
		"data":    doc,
	})
}

// Delete removes an existing team
func (h *TeamHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTeamOperation("delete")
	id := c.Param("id")

	if _, exists := h.store.Get(c.Request().Context(), store.TeamsCollection, id); !exists {
		log.Warn("Team not found for delete", zap.String("team_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Team not found",
		})
	}

	defer prometheus.TrackStoreOperation("delete")(time.Now())

	if !h.store.Delete(c.Request().Context(), store.TeamsCollection, id) {
		log.Error("Failed to delete team", zap.String("team_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete team",
		})
	}

	log.Info("Team deleted", zap.String("team_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Team %s deleted successfully", id),
	})
}
