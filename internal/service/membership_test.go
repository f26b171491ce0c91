package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/membership"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type MembershipServiceSuite struct {
	testutil.BaseServiceTestSuite
	membershipService MembershipService
	exportService     ExportService
}

func TestMembershipService(t *testing.T) {
	suite.Run(t, new(MembershipServiceSuite))
}

func (s *MembershipServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCache(),
		SignupRepo:     s.GetStores().SignupRepo,
		MembershipRepo: s.GetStores().MembershipRepo,
	}
	s.membershipService = NewMembershipService(params)
	s.exportService = NewExportService(params)
}

func (s *MembershipServiceSuite) TestCreateMembership() {
	resp, err := s.membershipService.CreateMembership(s.GetContext(), &dto.CreateMembershipRequest{
		MemberID:         "member_1",
		PackageName:      "Gold",
		MembershipStatus: "active",
		Price:            decimal.NewFromInt(50),
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.True(strings.HasPrefix(resp.ID, "membership_"))
	s.Equal("Gold", resp.PackageName)
	s.False(resp.CreatedAt.IsZero())
}

func (s *MembershipServiceSuite) TestCreateMembershipValidation() {
	testCases := []struct {
		name string
		req  *dto.CreateMembershipRequest
	}{
		{
			name: "missing package name",
			req: &dto.CreateMembershipRequest{
				MembershipStatus: "active",
				Price:            decimal.NewFromInt(10),
			},
		},
		{
			name: "missing status",
			req: &dto.CreateMembershipRequest{
				PackageName: "Gold",
				Price:       decimal.NewFromInt(10),
			},
		},
		{
			name: "negative price",
			req: &dto.CreateMembershipRequest{
				PackageName:      "Gold",
				MembershipStatus: "active",
				Price:            decimal.NewFromInt(-5),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.membershipService.CreateMembership(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
			s.Nil(resp)
		})
	}
}

func (s *MembershipServiceSuite) TestListMembershipsWithFilters() {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, seed := range []struct {
		pkg    string
		status string
	}{
		{"Gold", "active"},
		{"Gold", "expired"},
		{"Silver", "active"},
	} {
		createdAt := jan
		_, err := s.membershipService.CreateMembership(s.GetContext(), &dto.CreateMembershipRequest{
			PackageName:      seed.pkg,
			MembershipStatus: seed.status,
			Price:            decimal.NewFromInt(10),
			CreatedAt:        &createdAt,
		})
		s.NoError(err)
	}

	filter := membership.NewFilter()
	filter.PackageNames = []string{"Gold"}
	resp, err := s.membershipService.ListMemberships(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(2, resp.Total)

	filter = membership.NewFilter()
	filter.Statuses = []string{"active"}
	resp, err = s.membershipService.ListMemberships(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(2, resp.Total)
	s.True(lo.EveryBy(resp.Items, func(item *dto.MembershipResponse) bool {
		return item.MembershipStatus == "active"
	}))
}

func (s *MembershipServiceSuite) TestListMembershipsPagination() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createdAt := base.AddDate(0, 0, i)
		_, err := s.membershipService.CreateMembership(s.GetContext(), &dto.CreateMembershipRequest{
			PackageName:      "Gold",
			MembershipStatus: "active",
			Price:            decimal.NewFromInt(10),
			CreatedAt:        &createdAt,
		})
		s.NoError(err)
	}

	filter := membership.NewFilter()
	filter.QueryFilter.Limit = lo.ToPtr(2)
	filter.QueryFilter.Offset = lo.ToPtr(2)
	resp, err := s.membershipService.ListMemberships(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(5, resp.Total)
	// Oldest first
	s.Equal(base.AddDate(0, 0, 2), resp.Items[0].CreatedAt)
}

func (s *MembershipServiceSuite) TestExportMemberships() {
	createdAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err := s.membershipService.CreateMembership(s.GetContext(), &dto.CreateMembershipRequest{
		MemberID:         "member_1",
		PackageName:      "Gold",
		MembershipStatus: "active",
		Price:            decimal.NewFromFloat(49.99),
		CreatedAt:        &createdAt,
	})
	s.NoError(err)

	var buf bytes.Buffer
	s.NoError(s.exportService.ExportMemberships(s.GetContext(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	s.Len(lines, 2)
	s.Contains(lines[0], "package_name")
	s.Contains(lines[1], "Gold")
	s.Contains(lines[1], "49.99")
	s.Contains(lines[1], "2024-01-10T00:00:00Z")
}

func (s *MembershipServiceSuite) TestExportAnalyticsSeries() {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, pkg := range []string{"Gold", "Gold", "Silver"} {
		createdAt := jan
		_, err := s.membershipService.CreateMembership(s.GetContext(), &dto.CreateMembershipRequest{
			PackageName:      pkg,
			MembershipStatus: "active",
			Price:            decimal.NewFromInt(10),
			CreatedAt:        &createdAt,
		})
		s.NoError(err)
	}

	var buf bytes.Buffer
	s.NoError(s.exportService.ExportAnalyticsSeries(s.GetContext(), &buf))

	out := buf.String()
	s.Contains(out, "series,label,value")
	s.Contains(out, "package_distribution,Gold,2")
	s.Contains(out, "monthly_revenue,Jan 24,30")
	s.Contains(out, "top_packages,Gold,2")
}

func (s *MembershipServiceSuite) TestExportEmptyRoster() {
	var buf bytes.Buffer
	s.NoError(s.exportService.ExportMemberships(s.GetContext(), &buf))

	// Header row only
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	s.Len(lines, 1)
}
