package testutil

import (
	"context"
	"sort"

	"github.com/gymflow/gymflow/internal/domain/membership"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryMembershipStore implements membership.Repository
type InMemoryMembershipStore struct {
	*InMemoryStore[*membership.Membership]
}

func NewInMemoryMembershipStore() *InMemoryMembershipStore {
	return &InMemoryMembershipStore{
		InMemoryStore: NewInMemoryStore[*membership.Membership](),
	}
}

func (s *InMemoryMembershipStore) Create(ctx context.Context, m *membership.Membership) error {
	if m == nil {
		return ierr.NewError("membership cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, m.ID, m)
}

func membershipFilterFn(ctx context.Context, m *membership.Membership, filter *membership.Filter) bool {
	if m == nil {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && m.TenantID != tenantID {
		return false
	}
	if m.Status != types.StatusPublished {
		return false
	}
	if filter == nil {
		return true
	}
	if filter.TimeRangeFilter != nil {
		tr := filter.TimeRangeFilter
		if tr.StartTime != nil && m.CreatedAt.Before(*tr.StartTime) {
			return false
		}
		if tr.EndTime != nil && m.CreatedAt.After(*tr.EndTime) {
			return false
		}
	}
	if len(filter.PackageNames) > 0 && !lo.Contains(filter.PackageNames, m.PackageName) {
		return false
	}
	if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, m.MembershipStatus) {
		return false
	}
	return true
}

func (s *InMemoryMembershipStore) List(ctx context.Context, filter *membership.Filter) ([]*membership.Membership, error) {
	items := s.InMemoryStore.List(ctx, func(ctx context.Context, m *membership.Membership) bool {
		return membershipFilterFn(ctx, m, filter)
	})

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	if filter != nil {
		if offset := filter.GetOffset(); offset > 0 {
			if offset >= len(items) {
				return nil, nil
			}
			items = items[offset:]
		}
		if limit := filter.GetLimit(); limit > 0 && len(items) > limit {
			items = items[:limit]
		}
	}
	return items, nil
}

func (s *InMemoryMembershipStore) Count(ctx context.Context, filter *membership.Filter) (int, error) {
	items := s.InMemoryStore.List(ctx, func(ctx context.Context, m *membership.Membership) bool {
		return membershipFilterFn(ctx, m, filter)
	})
	return len(items), nil
}
