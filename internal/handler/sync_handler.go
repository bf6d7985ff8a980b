package handler

import (
	"context"
	"net/http"

	"github.com/TonyNguyenVn17/USF-Hackabull/internal/importer"
	"github.com/TonyNguyenVn17/USF-Hackabull/pkg/logger"
	"github.com/TonyNguyenVn17/USF-Hackabull/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SyncHandler triggers background imports of Google Form responses. The
// engine may be nil when no sheets credentials are configured; the endpoint
// then reports the importer as unavailable.
type SyncHandler struct {
	engine       *importer.Engine
	defaultRange string
}

// NewSyncHandler creates a sync handler over the given import engine
func NewSyncHandler(engine *importer.Engine, defaultRange string) *SyncHandler {
	return &SyncHandler{engine: engine, defaultRange: defaultRange}
}

// SyncGoogleForm starts a form response sync in a detached goroutine and
// returns immediately. There is no completion signal or job-status lookup;
// the outcome is only visible in logs and import metrics.
func (h *SyncHandler) SyncGoogleForm(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("sync_google_form")

	if h.engine == nil {
		log.Warn("Form sync requested but the importer is not configured")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "Form sync is not configured",
		})
	}

	spreadsheetID := c.QueryParam("spreadsheet_id")
	if spreadsheetID == "" {
		log.Warn("Form sync requested without a spreadsheet_id")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "spreadsheet_id is required",
		})
	}

	rangeName := c.QueryParam("range_name")
	if rangeName == "" {
		rangeName = h.defaultRange
	}

	log.Info("Starting background form sync",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("range", rangeName))

	// Detached from the request: the sync outlives this call and nothing
	// waits on it.
	go func() {
		if err := h.engine.SyncFormResponses(context.Background(), spreadsheetID, rangeName); err != nil {
			logger.GetLogger().Error("Background form sync failed",
				zap.String("spreadsheet_id", spreadsheetID),
				zap.String("range", rangeName),
				zap.Error(err))
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Form sync started in background",
		"status":  "processing",
	})
}
