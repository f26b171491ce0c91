package testutil

import (
	"context"
	"sort"

	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// InMemorySignupStore implements signup.Repository
type InMemorySignupStore struct {
	*InMemoryStore[*signup.Signup]
}

func NewInMemorySignupStore() *InMemorySignupStore {
	return &InMemorySignupStore{
		InMemoryStore: NewInMemoryStore[*signup.Signup](),
	}
}

func (s *InMemorySignupStore) Create(ctx context.Context, su *signup.Signup) error {
	if su == nil {
		return ierr.NewError("signup cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, su.ID, su)
}

func signupFilterFn(ctx context.Context, su *signup.Signup, filter *signup.Filter) bool {
	if su == nil {
		return false
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" && su.TenantID != tenantID {
		return false
	}
	if su.Status != types.StatusPublished {
		return false
	}
	if filter != nil && filter.TimeRangeFilter != nil {
		tr := filter.TimeRangeFilter
		if tr.StartTime != nil && su.CreatedAt.Before(*tr.StartTime) {
			return false
		}
		if tr.EndTime != nil && su.CreatedAt.After(*tr.EndTime) {
			return false
		}
	}
	return true
}

func (s *InMemorySignupStore) List(ctx context.Context, filter *signup.Filter) ([]*signup.Signup, error) {
	items := s.InMemoryStore.List(ctx, func(ctx context.Context, su *signup.Signup) bool {
		return signupFilterFn(ctx, su, filter)
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

func (s *InMemorySignupStore) Count(ctx context.Context, filter *signup.Filter) (int, error) {
	items := s.InMemoryStore.List(ctx, func(ctx context.Context, su *signup.Signup) bool {
		return signupFilterFn(ctx, su, filter)
	})
	return len(items), nil
}
