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

// UserHandler serves the user record CRUD surface
type UserHandler struct {
	store store.Store
}

// NewUserHandler creates a user handler over the given store
func NewUserHandler(st store.Store) *UserHandler {
	return &UserHandler{store: st}
}

// List returns all users, optionally filtered by registration status and
// source equality
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("list")

	statusFilter := c.QueryParam("status")
	sourceFilter := c.QueryParam("source")

	defer prometheus.TrackStoreOperation("list")(time.Now())

	users, ok := h.store.List(c.Request().Context(), store.UsersCollection)
	if !ok {
		log.Error("Failed to list users")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve users",
		})
	}

	filtered := make(map[string]map[string]any, len(users))
	for id, doc := range users {
		if statusFilter != "" && doc["registration_status"] != statusFilter {
			continue
		}
		if sourceFilter != "" && doc["registration_source"] != sourceFilter {
			continue
		}
		filtered[id] = doc
	}

	log.Info("Users retrieved",
		zap.Int("count", len(filtered)),
		zap.String("status_filter", statusFilter),
		zap.String("source_filter", sourceFilter))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Users retrieved successfully",
		"data":    filtered,
	})
}

// Get returns a single user by ID
func (h *UserHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("get")
	id := c.Param("id")

	defer prometheus.TrackStoreOperation("get")(time.Now())

	doc, ok := h.store.Get(c.Request().Context(), store.UsersCollection, id)
	if !ok {
		log.Warn("User not found", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User retrieved successfully",
		"data":    doc,
	})
}

// Create stores a new user under the given ID. An existing ID is rejected;
// create never overwrites.
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("create")
	id := c.Param("id")

	var user model.User
	if err := c.Bind(&user); err != nil {
		log.Error("Invalid request data", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if _, exists := h.store.Get(c.Request().Context(), store.UsersCollection, id); exists {
		log.Warn("User ID already exists", zap.String("user_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "User ID already exists",
		})
	}

	user.ApplyDefaults()

	defer prometheus.TrackStoreOperation("set")(time.Now())

	doc := user.Document()
	if !h.store.Set(c.Request().Context(), store.UsersCollection, id, doc) {
		log.Error("Failed to create user", zap.String("user_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create user",
		})
	}

	log.Info("User created",
		zap.String("user_id", id),
		zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("User %s created successfully", id),
		"data":    doc,
	})
}

// Update fully replaces an existing user and stamps updated_at
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("update")
	id := c.Param("id")

	var user model.User
	if err := c.Bind(&user); err != nil {
		log.Error("Invalid request data", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if _, exists := h.store.Get(c.Request().Context(), store.UsersCollection, id); !exists {
		log.Warn("User not found for update", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	user.ApplyDefaults()
	user.UpdatedAt = time.Now().UTC()

	defer prometheus.TrackStoreOperation("set")(time.Now())

	doc := user.Document()
	if !h.store.Set(c.Request().Context(), store.UsersCollection, id, doc) {
		log.Error("Failed to update user", zap.String("user_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update user",
		})
	}

	log.Info("User updated", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("User %s updated successfully", id),
		"data":    doc,
	})
}

// UpdateStatus patches only the registration status of an existing user
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("update_status")
	id := c.Param("id")
	newStatus := c.QueryParam("status")

	if !model.ValidStatus(newStatus) {
		log.Warn("Invalid status value",
			zap.String("user_id", id),
			zap.String("status", newStatus))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid status value",
		})
	}

	doc, ok := h.store.Get(c.Request().Context(), store.UsersCollection, id)
	if !ok {
		log.Warn("User not found for status update", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	doc["registration_status"] = newStatus
	doc["updated_at"] = time.Now().UTC().Format(time.RFC3339Nano)

	defer prometheus.TrackStoreOperation("set")(time.Now())

	if !h.store.Set(c.Request().Context(), store.UsersCollection, id, doc) {
		log.Error("Failed to update user status", zap.String("user_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update user status",
		})
	}

	log.Info("User status updated",
		zap.String("user_id", id),
		zap.String("status", newStatus))
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("User %s status updated to %s", id, newStatus),
		"data":    doc,
	})
}

// Delete removes an existing user
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("delete")
	id := c.Param("id")

	if _, exists := h.store.Get(c.Request().Context(), store.UsersCollection, id); !exists {
		log.Warn("User not found for delete", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	defer prometheus.TrackStoreOperation("delete")(time.Now())

	if !h.store.Delete(c.Request().Context(), store.UsersCollection, id) {
		log.Error("Failed to delete user", zap.String("user_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete user",
		})
	}

	log.Info("User deleted", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("User %s deleted successfully", id),
	})
}

// BatchImport stores a list of user payloads directly, deriving each ID from
// the email local part and tagging the records as externally sourced. Unlike
// the form sync, it overwrites existing records.
func (h *UserHandler) BatchImport(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("batch_import")

	var users []model.User
	if err := c.Bind(&users); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	results := make([]echo.Map, 0, len(users))
	for i := range users {
		user := &users[i]
		id := model.DeriveID(user.Email)
		user.RegistrationSource = model.SourceExternal
		user.ApplyDefaults()

		success := h.store.Set(c.Request().Context(), store.UsersCollection, id, user.Document())
		if !success {
			log.Warn("Failed to import user",
				zap.String("user_id", id),
				zap.String("email", user.Email))
		}
		results = append(results, echo.Map{
			"user_id": id,
			"email":   user.Email,
			"success": success,
		})
	}

	log.Info("Batch import completed", zap.Int("total", len(users)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Batch import completed",
		"data": echo.Map{
			"total":   len(users),
			"results": results,
		},
	})
}
