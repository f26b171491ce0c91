package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/domain/membership"
	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// AnalyticsService computes the dashboard series for the tenant in the
// request context
type AnalyticsService interface {
	GetDashboardAnalytics(ctx context.Context, req *dto.GetDashboardAnalyticsRequest) (*dto.GetDashboardAnalyticsResponse, error)
}

type analyticsService struct {
	ServiceParams
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(params ServiceParams) AnalyticsService {
	return &analyticsService{
		ServiceParams: params,
	}
}

// rosterSnapshot is one consistent read of both record sets. Cached briefly
// so dashboard refreshes don't re-read the full roster; the derived series
// are still recomputed from scratch on every request.
type rosterSnapshot struct {
	Signups     []*signup.Signup
	Memberships []*membership.Membership
}

// GetDashboardAnalytics fetches both record sets from one snapshot and folds
// them into the five chart-ready series
func (s *analyticsService) GetDashboardAnalytics(ctx context.Context, req *dto.GetDashboardAnalyticsRequest) (*dto.GetDashboardAnalyticsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.loadRoster(ctx, req)
	if err != nil {
		return nil, err
	}

	result := ComputeAnalytics(snapshot.Signups, snapshot.Memberships)
	if result.SkippedRecords > 0 {
		s.Logger.Warnw("excluded records without a creation timestamp from time-bucketed series",
			"tenant_id", types.GetTenantID(ctx),
			"skipped", result.SkippedRecords,
		)
	}

	return &dto.GetDashboardAnalyticsResponse{
		AnalyticsResult: result,
		SignupCount:     len(snapshot.Signups),
		MembershipCount: len(snapshot.Memberships),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		ComputedAt:      time.Now().UTC(),
	}, nil
}

// loadRoster fetches signups and memberships concurrently. The reduction
// never starts before both sets have fully arrived.
func (s *analyticsService) loadRoster(ctx context.Context, req *dto.GetDashboardAnalyticsRequest) (*rosterSnapshot, error) {
	cacheKey := s.rosterCacheKey(ctx, req)
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if snapshot, ok := cache.UnmarshalCacheValue[rosterSnapshot](cached); ok {
			return snapshot, nil
		}
	}

	timeRange := &types.TimeRangeFilter{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	snapshot := &rosterSnapshot{}
	g := pool.New().WithContext(ctx)

	// Each flag is written by exactly one goroutine and read after Wait
	var signupsDegraded, membershipsDegraded bool

	g.Go(func(ctx context.Context) error {
		filter := signup.NewNoLimitFilter()
		filter.TimeRangeFilter = timeRange
		signups, err := s.SignupRepo.List(ctx, filter)
		if err != nil {
			if req.AllowPartial {
				s.Logger.Warnw("failed to fetch signups, degrading to empty set", "error", err)
				signupsDegraded = true
				return nil
			}
			return err
		}
		snapshot.Signups = signups
		return nil
	})

	g.Go(func(ctx context.Context) error {
		filter := membership.NewNoLimitFilter()
		filter.TimeRangeFilter = timeRange
		memberships, err := s.MembershipRepo.List(ctx, filter)
		if err != nil {
			if req.AllowPartial {
				s.Logger.Warnw("failed to fetch memberships, degrading to empty set", "error", err)
				membershipsDegraded = true
				return nil
			}
			return err
		}
		snapshot.Memberships = memberships
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load analytics records").
			Mark(ierr.ErrDatabase)
	}

	// A degraded snapshot is only valid for the request that opted into it.
	// Caching it would serve the hole to strict callers for the whole TTL.
	if signupsDegraded || membershipsDegraded {
		return snapshot, nil
	}

	s.Cache.Set(ctx, cacheKey, snapshot, s.Config.Analytics.RosterCacheTTL)
	return snapshot, nil
}

func (s *analyticsService) rosterCacheKey(ctx context.Context, req *dto.GetDashboardAnalyticsRequest) string {
	start, end := "", ""
	if req.StartTime != nil {
		start = req.StartTime.UTC().Format(time.RFC3339)
	}
	if req.EndTime != nil {
		end = req.EndTime.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("analytics:roster:%s:%s:%s", types.GetTenantID(ctx), start, end)
}

// ComputeAnalytics folds the two record sets into the five derived series.
// Pure function: no I/O, deterministic for a given input, each call owns its
// own accumulators. Bucket order is first-seen encounter order; only the
// package leaderboard is sorted.
func ComputeAnalytics(signups []*signup.Signup, memberships []*membership.Membership) *dto.AnalyticsResult {
	skipped := 0

	// Growth: signups per month bucket
	growth := newOrderedCounter()
	for _, su := range signups {
		if su.CreatedAt.IsZero() {
			skipped++
			continue
		}
		growth.Add(su.CreatedAt.Format(types.MonthLabelFormat), 1)
	}

	// Memberships feed three series from the same normalized records
	packages := newOrderedCounter()
	statuses := newOrderedCounter()
	revenue := newOrderedSum()
	for _, raw := range memberships {
		m := raw.Normalized()

		packages.Add(m.PackageName, 1)
		statuses.Add(m.MembershipStatus, 1)

		if m.CreatedAt.IsZero() {
			skipped++
			continue
		}
		revenue.Add(m.CreatedAt.Format(types.MonthLabelFormat), m.Price)
	}

	packageDistribution := lo.Map(packages.Entries(), func(e counterEntry, _ int) types.DistributionPoint {
		return types.DistributionPoint{Name: e.Key, Value: e.Count}
	})

	// Top packages: stable sort keeps first-seen order among ties
	topPackages := make([]types.TopPackagePoint, len(packageDistribution))
	copy(topPackages, packageDistribution)
	sort.SliceStable(topPackages, func(i, j int) bool {
		return topPackages[i].Value > topPackages[j].Value
	})
	if len(topPackages) > types.TopPackagesLimit {
		topPackages = topPackages[:types.TopPackagesLimit]
	}

	return &dto.AnalyticsResult{
		MembersGrowth: lo.Map(growth.Entries(), func(e counterEntry, _ int) types.GrowthPoint {
			return types.GrowthPoint{MonthLabel: e.Key, Count: e.Count}
		}),
		PackageDistribution: packageDistribution,
		MonthlyRevenue: lo.Map(revenue.Entries(), func(e sumEntry, _ int) types.RevenuePoint {
			return types.RevenuePoint{MonthLabel: e.Key, Revenue: e.Sum}
		}),
		StatusDistribution: lo.Map(statuses.Entries(), func(e counterEntry, _ int) types.DistributionPoint {
			return types.DistributionPoint{Name: e.Key, Value: e.Count}
		}),
		TopPackages:    topPackages,
		SkippedRecords: skipped,
		Complete:       true,
	}
}
