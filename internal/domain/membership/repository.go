package membership

import (
	"context"

	"github.com/gymflow/gymflow/internal/types"
)

// Repository defines the interface for membership persistence operations
type Repository interface {
	// Create records a new membership
	Create(ctx context.Context, m *Membership) error

	// List retrieves memberships for the tenant in the context, oldest first
	List(ctx context.Context, filter *Filter) ([]*Membership, error)

	// Count returns the number of memberships matching the filter
	Count(ctx context.Context, filter *Filter) (int, error)
}

// Filter defines query parameters for listing memberships
type Filter struct {
	QueryFilter     *types.QueryFilter
	TimeRangeFilter *types.TimeRangeFilter

	// PackageNames filters by specific package labels
	PackageNames []string

	// Statuses filters by specific membership status labels
	Statuses []string
}

// NewFilter returns a filter with default pagination
func NewFilter() *Filter {
	return &Filter{
		QueryFilter: types.NewDefaultQueryFilter(),
	}
}

// NewNoLimitFilter returns a filter that fetches the full record set
func NewNoLimitFilter() *Filter {
	return &Filter{
		QueryFilter: types.NewNoLimitQueryFilter(),
	}
}

// GetLimit implements BaseFilter
func (f *Filter) GetLimit() int {
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter
func (f *Filter) GetOffset() int {
	return f.QueryFilter.GetOffset()
}
