package v1

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymflow/gymflow/internal/api/dto"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/service"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	exportService    service.ExportService
	logger           *logger.Logger
}

func NewAnalyticsHandler(
	analyticsService service.AnalyticsService,
	exportService service.ExportService,
	logger *logger.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		exportService:    exportService,
		logger:           logger,
	}
}

// GetDashboard returns the five chart-ready series for the tenant's dashboard
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	var req dto.GetDashboardAnalyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.analyticsService.GetDashboardAnalytics(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to compute dashboard analytics", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExportMemberships streams the tenant's membership roster as CSV, or the
// computed dashboard series when dataset=series
func (h *AnalyticsHandler) ExportMemberships(c *gin.Context) {
	dataset := c.DefaultQuery("dataset", "memberships")

	var export func(context.Context, io.Writer) error
	switch dataset {
	case "memberships":
		export = h.exportService.ExportMemberships
	case "series":
		export = h.exportService.ExportAnalyticsSeries
	default:
		c.Error(ierr.NewError("unsupported dataset").
			WithHint("dataset must be one of: memberships, series").
			WithReportableDetails(map[string]interface{}{
				"dataset": dataset,
			}).
			Mark(ierr.ErrValidation))
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dataset+".csv"))

	if err := export(c.Request.Context(), c.Writer); err != nil {
		h.logger.Errorw("failed to export dataset", "dataset", dataset, "error", err)
		c.Error(err)
		return
	}
}
