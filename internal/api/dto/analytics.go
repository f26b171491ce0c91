package dto

import (
	"time"

	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// GetDashboardAnalyticsRequest represents the request for the dashboard
// analytics API
type GetDashboardAnalyticsRequest struct {
	// StartTime and EndTime optionally bound the record sets fed into the
	// aggregation. Both sets are always read from the same snapshot.
	StartTime *time.Time `json:"start_time,omitempty" form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   *time.Time `json:"end_time,omitempty" form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`

	// AllowPartial degrades a failed fetch of one record set to an empty
	// slice instead of failing the whole request. Off by default so the
	// revenue and distribution series always come from one snapshot.
	AllowPartial bool `json:"allow_partial,omitempty" form:"allow_partial"`
}

// Validate validates the dashboard analytics request
func (r *GetDashboardAnalyticsRequest) Validate() error {
	if r.StartTime != nil && r.EndTime != nil && r.EndTime.Before(*r.StartTime) {
		return ierr.NewError("end_time must be after start_time").
			WithHint("The requested time range is inverted").
			WithReportableDetails(map[string]interface{}{
				"start_time": r.StartTime,
				"end_time":   r.EndTime,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AnalyticsResult bundles the five chart-ready series computed from one
// consistent snapshot of signup and membership records
type AnalyticsResult struct {
	MembersGrowth       []types.GrowthPoint       `json:"members_growth"`
	PackageDistribution []types.DistributionPoint `json:"package_distribution"`
	MonthlyRevenue      []types.RevenuePoint      `json:"monthly_revenue"`
	StatusDistribution  []types.DistributionPoint `json:"status_distribution"`
	TopPackages         []types.TopPackagePoint   `json:"top_packages"`

	// SkippedRecords counts rows excluded from the time-bucketed series
	// because their creation timestamp was missing upstream
	SkippedRecords int `json:"skipped_records,omitempty"`

	// Complete signals the consuming view that every series was computed and
	// the loading indicator can be dropped
	Complete bool `json:"complete"`
}

// GetDashboardAnalyticsResponse represents the response for the dashboard
// analytics API
type GetDashboardAnalyticsResponse struct {
	*AnalyticsResult

	SignupCount     int        `json:"signup_count"`
	MembershipCount int        `json:"membership_count"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	ComputedAt      time.Time  `json:"computed_at"`
}
