package service

import (
	"context"
	"testing"
	"time"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/membership"
	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/testutil"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AnalyticsServiceSuite struct {
	testutil.BaseServiceTestSuite
	analyticsService AnalyticsService
	signupService    SignupService
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceSuite))
}

func (s *AnalyticsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCache(),
		SignupRepo:     s.GetStores().SignupRepo,
		MembershipRepo: s.GetStores().MembershipRepo,
	}
	s.analyticsService = NewAnalyticsService(params)
	s.signupService = NewSignupService(params)
}

func (s *AnalyticsServiceSuite) newSignup(id string, createdAt time.Time) *signup.Signup {
	return &signup.Signup{
		ID: id,
		BaseModel: types.BaseModel{
			TenantID:  types.DefaultTenantID,
			Status:    types.StatusPublished,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
	}
}

func (s *AnalyticsServiceSuite) newMembership(id, pkg, status string, price float64, createdAt time.Time) *membership.Membership {
	return &membership.Membership{
		ID:               id,
		PackageName:      pkg,
		MembershipStatus: status,
		Price:            decimal.NewFromFloat(price),
		BaseModel: types.BaseModel{
			TenantID:  types.DefaultTenantID,
			Status:    types.StatusPublished,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
	}
}

func (s *AnalyticsServiceSuite) seedSignups(signups ...*signup.Signup) {
	for _, su := range signups {
		s.NoError(s.GetStores().SignupRepo.Create(s.GetContext(), su))
	}
}

func (s *AnalyticsServiceSuite) seedMemberships(memberships ...*membership.Membership) {
	for _, m := range memberships {
		s.NoError(s.GetStores().MembershipRepo.Create(s.GetContext(), m))
	}
}

func (s *AnalyticsServiceSuite) TestGrowthBucketsSignupsByMonth() {
	s.seedSignups(
		s.newSignup("signup_1", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		s.newSignup("signup_2", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		s.newSignup("signup_3", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	)

	resp, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)

	s.Equal([]types.GrowthPoint{
		{MonthLabel: "Jan 24", Count: 2},
		{MonthLabel: "Feb 24", Count: 1},
	}, resp.MembersGrowth)
	s.Equal(3, resp.SignupCount)
	s.True(resp.Complete)
}

func (s *AnalyticsServiceSuite) TestMembershipSeries() {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	s.seedMemberships(
		s.newMembership("membership_1", "Gold", "active", 50, jan),
		s.newMembership("membership_2", "Gold", "active", 50, feb),
		s.newMembership("membership_3", "Silver", "expired", 30, feb),
	)

	resp, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)

	s.Equal([]types.DistributionPoint{
		{Name: "Gold", Value: 2},
		{Name: "Silver", Value: 1},
	}, resp.PackageDistribution)

	s.Equal([]types.DistributionPoint{
		{Name: "active", Value: 2},
		{Name: "expired", Value: 1},
	}, resp.StatusDistribution)

	s.Len(resp.MonthlyRevenue, 2)
	s.Equal("Jan 24", resp.MonthlyRevenue[0].MonthLabel)
	s.True(resp.MonthlyRevenue[0].Revenue.Equal(decimal.NewFromInt(50)))
	s.Equal("Feb 24", resp.MonthlyRevenue[1].MonthLabel)
	s.True(resp.MonthlyRevenue[1].Revenue.Equal(decimal.NewFromInt(80)))

	s.Equal([]types.TopPackagePoint{
		{Name: "Gold", Value: 2},
		{Name: "Silver", Value: 1},
	}, resp.TopPackages)
	s.Equal(3, resp.MembershipCount)
}

func (s *AnalyticsServiceSuite) TestEmptyRoster() {
	resp, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)

	s.Empty(resp.MembersGrowth)
	s.Empty(resp.PackageDistribution)
	s.Empty(resp.MonthlyRevenue)
	s.Empty(resp.StatusDistribution)
	s.Empty(resp.TopPackages)
	s.Zero(resp.SignupCount)
	s.Zero(resp.MembershipCount)
	s.Zero(resp.SkippedRecords)
	s.True(resp.Complete)
}

func (s *AnalyticsServiceSuite) TestUnknownLabelNormalization() {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	s.seedMemberships(
		s.newMembership("membership_1", "", "", 10, jan),
		s.newMembership("membership_2", "Gold", "active", 20, jan),
	)

	resp, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)

	s.Equal([]types.DistributionPoint{
		{Name: types.UnknownLabel, Value: 1},
		{Name: "Gold", Value: 1},
	}, resp.PackageDistribution)
	s.Equal([]types.DistributionPoint{
		{Name: types.UnknownLabel, Value: 1},
		{Name: "active", Value: 1},
	}, resp.StatusDistribution)
}

func (s *AnalyticsServiceSuite) TestInvertedRangeRejected() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	resp, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{
		StartTime: &start,
		EndTime:   &end,
	})
	s.Error(err)
	s.Nil(resp)
}

func (s *AnalyticsServiceSuite) TestTimeRangeBoundsRoster() {
	s.seedSignups(
		s.newSignup("signup_1", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		s.newSignup("signup_2", time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)),
		s.newSignup("signup_3", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
	)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	resp, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{
		StartTime: &start,
		EndTime:   &end,
	})
	s.NoError(err)

	s.Equal([]types.GrowthPoint{{MonthLabel: "Feb 24", Count: 1}}, resp.MembersGrowth)
	s.Equal(1, resp.SignupCount)
}

func (s *AnalyticsServiceSuite) TestIdempotentAcrossCalls() {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	s.seedSignups(s.newSignup("signup_1", jan))
	s.seedMemberships(s.newMembership("membership_1", "Gold", "active", 25, jan))

	first, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)
	second, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)

	s.Equal(first.AnalyticsResult, second.AnalyticsResult)
}

func (s *AnalyticsServiceSuite) TestCreateInvalidatesRosterCache() {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	s.seedSignups(s.newSignup("signup_1", jan))

	resp, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)
	s.Equal(1, resp.SignupCount)

	createdAt := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	_, err = s.signupService.CreateSignup(s.GetContext(), &dto.CreateSignupRequest{
		Email:     "new.member@example.com",
		CreatedAt: &createdAt,
	})
	s.NoError(err)

	resp, err = s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)
	s.Equal(2, resp.SignupCount)
	s.Equal([]types.GrowthPoint{{MonthLabel: "Jan 24", Count: 2}}, resp.MembersGrowth)
}

// flakySignupRepo fails the first N List calls, then recovers
type flakySignupRepo struct {
	*testutil.InMemorySignupStore
	failures int
}

func (r *flakySignupRepo) List(ctx context.Context, filter *signup.Filter) ([]*signup.Signup, error) {
	if r.failures > 0 {
		r.failures--
		return nil, ierr.NewError("connection reset").Mark(ierr.ErrDatabase)
	}
	return r.InMemorySignupStore.List(ctx, filter)
}

func (s *AnalyticsServiceSuite) TestDegradedSnapshotNotCached() {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	s.seedSignups(s.newSignup("signup_1", jan))

	flaky := &flakySignupRepo{
		InMemorySignupStore: s.GetStores().SignupRepo,
		failures:            1,
	}
	svc := NewAnalyticsService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCache(),
		SignupRepo:     flaky,
		MembershipRepo: s.GetStores().MembershipRepo,
	})

	// The opted-in request rides out the failure with an empty signup set
	resp, err := svc.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{AllowPartial: true})
	s.NoError(err)
	s.Zero(resp.SignupCount)

	// A strict follow-up must see the full roster, not the degraded snapshot
	resp, err = svc.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)
	s.Equal(1, resp.SignupCount)
	s.Equal([]types.GrowthPoint{{MonthLabel: "Jan 24", Count: 1}}, resp.MembersGrowth)
}

func (s *AnalyticsServiceSuite) TestStrictRequestFailsOnFetchError() {
	flaky := &flakySignupRepo{
		InMemorySignupStore: s.GetStores().SignupRepo,
		failures:            1,
	}
	svc := NewAnalyticsService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCache(),
		SignupRepo:     flaky,
		MembershipRepo: s.GetStores().MembershipRepo,
	})

	resp, err := svc.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.Error(err)
	s.True(ierr.IsDatabase(err))
	s.Nil(resp)
}

func (s *AnalyticsServiceSuite) TestTenantIsolation() {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	other := s.newSignup("signup_other", jan)
	other.TenantID = "tenant-b"
	s.seedSignups(s.newSignup("signup_1", jan), other)

	resp, err := s.analyticsService.GetDashboardAnalytics(s.GetContext(), &dto.GetDashboardAnalyticsRequest{})
	s.NoError(err)
	s.Equal(1, resp.SignupCount)
	s.Equal([]types.GrowthPoint{{MonthLabel: "Jan 24", Count: 1}}, resp.MembersGrowth)
}

// ComputeAnalytics is pure, so the fold-level properties are checked without
// the service plumbing.

func TestComputeAnalyticsFirstSeenOrder(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	memberships := []*membership.Membership{
		{ID: "m1", PackageName: "Silver", MembershipStatus: "active", Price: decimal.NewFromInt(10), BaseModel: types.BaseModel{CreatedAt: jan}},
		{ID: "m2", PackageName: "Gold", MembershipStatus: "expired", Price: decimal.NewFromInt(20), BaseModel: types.BaseModel{CreatedAt: jan}},
		{ID: "m3", PackageName: "Silver", MembershipStatus: "active", Price: decimal.NewFromInt(10), BaseModel: types.BaseModel{CreatedAt: jan}},
	}

	result := ComputeAnalytics(nil, memberships)

	got := lo.Map(result.PackageDistribution, func(p types.DistributionPoint, _ int) string { return p.Name })
	if got[0] != "Silver" || got[1] != "Gold" {
		t.Fatalf("expected first-seen bucket order [Silver Gold], got %v", got)
	}
}

func TestComputeAnalyticsPackageMonotonicity(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	base := []*membership.Membership{
		{ID: "m1", PackageName: "Gold", MembershipStatus: "active", Price: decimal.NewFromInt(10), BaseModel: types.BaseModel{CreatedAt: jan}},
		{ID: "m2", PackageName: "Silver", MembershipStatus: "active", Price: decimal.NewFromInt(5), BaseModel: types.BaseModel{CreatedAt: jan}},
		{ID: "m3", PackageName: "Gold", MembershipStatus: "expired", Price: decimal.NewFromInt(10), BaseModel: types.BaseModel{CreatedAt: jan}},
	}

	before := ComputeAnalytics(nil, base)

	extended := append(append([]*membership.Membership{}, base...), &membership.Membership{
		ID: "m4", PackageName: "Platinum", MembershipStatus: "active", Price: decimal.NewFromInt(99),
		BaseModel: types.BaseModel{CreatedAt: jan},
	})
	after := ComputeAnalytics(nil, extended)

	// One membership with a brand-new package grows the series by exactly one
	// bucket and leaves every existing bucket untouched
	if len(after.PackageDistribution) != len(before.PackageDistribution)+1 {
		t.Fatalf("expected %d buckets, got %d", len(before.PackageDistribution)+1, len(after.PackageDistribution))
	}
	for i, p := range before.PackageDistribution {
		if after.PackageDistribution[i] != p {
			t.Fatalf("existing bucket %d changed: before %+v, after %+v", i, p, after.PackageDistribution[i])
		}
	}
	last := after.PackageDistribution[len(after.PackageDistribution)-1]
	if last.Name != "Platinum" || last.Value != 1 {
		t.Fatalf("expected new bucket {Platinum 1} appended, got %+v", last)
	}
}

func TestComputeAnalyticsTopPackages(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	counts := map[string]int{"A": 3, "B": 5, "C": 1, "D": 4, "E": 2, "F": 4, "G": 6}
	order := []string{"A", "B", "C", "D", "E", "F", "G"}

	var memberships []*membership.Membership
	for _, pkg := range order {
		for n := 0; n < counts[pkg]; n++ {
			memberships = append(memberships, &membership.Membership{
				ID:               types.GenerateUUID(),
				PackageName:      pkg,
				MembershipStatus: "active",
				Price:            decimal.NewFromInt(1),
				BaseModel:        types.BaseModel{CreatedAt: jan},
			})
		}
	}

	result := ComputeAnalytics(nil, memberships)

	if len(result.TopPackages) != types.TopPackagesLimit {
		t.Fatalf("expected %d top packages, got %d", types.TopPackagesLimit, len(result.TopPackages))
	}
	// Descending by count; D before F since ties keep first-seen order
	want := []string{"G", "B", "D", "F", "A"}
	for idx, name := range want {
		if result.TopPackages[idx].Name != name {
			t.Fatalf("expected top packages %v, got %+v", want, result.TopPackages)
		}
	}
	// Every leaderboard entry exists in the full distribution with the same count
	for _, top := range result.TopPackages {
		full, ok := lo.Find(result.PackageDistribution, func(p types.DistributionPoint) bool {
			return p.Name == top.Name
		})
		if !ok || full.Value != top.Value {
			t.Fatalf("top package %q not consistent with distribution", top.Name)
		}
	}
}

func TestComputeAnalyticsSkipsRecordsWithoutTimestamp(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	signups := []*signup.Signup{
		{ID: "s1", BaseModel: types.BaseModel{CreatedAt: jan}},
		{ID: "s2"}, // zero CreatedAt
	}
	memberships := []*membership.Membership{
		{ID: "m1", PackageName: "Gold", MembershipStatus: "active", Price: decimal.NewFromInt(10)}, // zero CreatedAt
	}

	result := ComputeAnalytics(signups, memberships)

	if result.SkippedRecords != 2 {
		t.Fatalf("expected 2 skipped records, got %d", result.SkippedRecords)
	}
	// Time series exclude the skipped rows
	if len(result.MembersGrowth) != 1 || result.MembersGrowth[0].Count != 1 {
		t.Fatalf("unexpected growth series: %+v", result.MembersGrowth)
	}
	if len(result.MonthlyRevenue) != 0 {
		t.Fatalf("unexpected revenue series: %+v", result.MonthlyRevenue)
	}
	// Categorical series still include them
	if len(result.PackageDistribution) != 1 || result.PackageDistribution[0].Value != 1 {
		t.Fatalf("unexpected package distribution: %+v", result.PackageDistribution)
	}
}

func TestComputeAnalyticsCountsPreserved(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	signups := []*signup.Signup{
		{ID: "s1", BaseModel: types.BaseModel{CreatedAt: jan}},
		{ID: "s2", BaseModel: types.BaseModel{CreatedAt: jan}},
		{ID: "s3", BaseModel: types.BaseModel{CreatedAt: feb}},
	}
	memberships := []*membership.Membership{
		{ID: "m1", PackageName: "Gold", MembershipStatus: "active", Price: decimal.NewFromFloat(12.5), BaseModel: types.BaseModel{CreatedAt: jan}},
		{ID: "m2", PackageName: "Silver", MembershipStatus: "frozen", Price: decimal.NewFromFloat(7.5), BaseModel: types.BaseModel{CreatedAt: feb}},
	}

	result := ComputeAnalytics(signups, memberships)

	growthTotal := lo.SumBy(result.MembersGrowth, func(p types.GrowthPoint) int { return p.Count })
	if growthTotal != len(signups) {
		t.Fatalf("growth counts sum to %d, want %d", growthTotal, len(signups))
	}

	pkgTotal := lo.SumBy(result.PackageDistribution, func(p types.DistributionPoint) int { return p.Value })
	if pkgTotal != len(memberships) {
		t.Fatalf("package counts sum to %d, want %d", pkgTotal, len(memberships))
	}

	revenueTotal := decimal.Zero
	for _, p := range result.MonthlyRevenue {
		revenueTotal = revenueTotal.Add(p.Revenue)
	}
	if !revenueTotal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("revenue sums to %s, want 20", revenueTotal)
	}
}
