package handlers

import (
	"net/http"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/interfaces/http/response"
	"autoserve.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// AnalyticsHandler serves the admin usage views
type AnalyticsHandler struct {
	analyticsUsecase *usecases.AnalyticsUsecase
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsUsecase *usecases.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

// ListSummaries lists usage summary rows
// GET /api/v1/analytics/usage?from=2026-08-01&to=2026-08-28&key=ops-dashboard&endpoint=bookings
func (h *AnalyticsHandler) ListSummaries(c *gin.Context) {
	query := entities.UsageQuery{
		KeyIdentity: c.Query("key"),
		Endpoint:    c.Query("endpoint"),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid from date, expected YYYY-MM-DD"))
			return
		}
		query.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid to date, expected YYYY-MM-DD"))
			return
		}
		query.To = t
	}

	summaries, err := h.analyticsUsecase.ListSummaries(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summaries)
}
