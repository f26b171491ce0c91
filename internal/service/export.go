package service

import (
	"context"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/gymflow/gymflow/internal/domain/membership"
	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/samber/lo"
)

// ExportService streams tenant data as CSV for offline analysis
type ExportService interface {
	ExportMemberships(ctx context.Context, w io.Writer) error
	ExportAnalyticsSeries(ctx context.Context, w io.Writer) error
}

type exportService struct {
	ServiceParams
}

// NewExportService creates a new export service
func NewExportService(params ServiceParams) ExportService {
	return &exportService{
		ServiceParams: params,
	}
}

// membershipCSVRow is the flat CSV projection of a membership record
type membershipCSVRow struct {
	ID               string `csv:"id"`
	MemberID         string `csv:"member_id"`
	PackageName      string `csv:"package_name"`
	MembershipStatus string `csv:"membership_status"`
	Price            string `csv:"price"`
	CreatedAt        string `csv:"created_at"`
}

func (s *exportService) ExportMemberships(ctx context.Context, w io.Writer) error {
	memberships, err := s.MembershipRepo.List(ctx, membership.NewNoLimitFilter())
	if err != nil {
		return err
	}

	rows := lo.Map(memberships, func(m *membership.Membership, _ int) *membershipCSVRow {
		n := m.Normalized()
		return &membershipCSVRow{
			ID:               n.ID,
			MemberID:         n.MemberID,
			PackageName:      n.PackageName,
			MembershipStatus: n.MembershipStatus,
			Price:            n.Price.String(),
			CreatedAt:        n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	})

	if err := gocsv.Marshal(rows, w); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode memberships as CSV").
			Mark(ierr.ErrSystem)
	}
	return nil
}

// seriesCSVRow is one bucket of a derived series in long format
type seriesCSVRow struct {
	Series string `csv:"series"`
	Label  string `csv:"label"`
	Value  string `csv:"value"`
}

// ExportAnalyticsSeries recomputes the dashboard series over the full roster
// and writes them as one long-format CSV
func (s *exportService) ExportAnalyticsSeries(ctx context.Context, w io.Writer) error {
	signups, err := s.SignupRepo.List(ctx, signup.NewNoLimitFilter())
	if err != nil {
		return err
	}
	memberships, err := s.MembershipRepo.List(ctx, membership.NewNoLimitFilter())
	if err != nil {
		return err
	}

	result := ComputeAnalytics(signups, memberships)

	var rows []*seriesCSVRow
	for _, p := range result.MembersGrowth {
		rows = append(rows, &seriesCSVRow{Series: "members_growth", Label: p.MonthLabel, Value: strconv.Itoa(p.Count)})
	}
	for _, p := range result.PackageDistribution {
		rows = append(rows, &seriesCSVRow{Series: "package_distribution", Label: p.Name, Value: strconv.Itoa(p.Value)})
	}
	for _, p := range result.MonthlyRevenue {
		rows = append(rows, &seriesCSVRow{Series: "monthly_revenue", Label: p.MonthLabel, Value: p.Revenue.String()})
	}
	for _, p := range result.StatusDistribution {
		rows = append(rows, &seriesCSVRow{Series: "status_distribution", Label: p.Name, Value: strconv.Itoa(p.Value)})
	}
	for _, p := range result.TopPackages {
		rows = append(rows, &seriesCSVRow{Series: "top_packages", Label: p.Name, Value: strconv.Itoa(p.Value)})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode analytics series as CSV").
			Mark(ierr.ErrSystem)
	}
	return nil
}
