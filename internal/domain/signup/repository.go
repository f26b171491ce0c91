package signup

import (
	"context"

	"github.com/gymflow/gymflow/internal/types"
)

// Repository defines the interface for signup persistence operations
type Repository interface {
	// Create records a new signup
	Create(ctx context.Context, s *Signup) error

	// List retrieves signups for the tenant in the context, oldest first
	List(ctx context.Context, filter *Filter) ([]*Signup, error)

	// Count returns the number of signups matching the filter
	Count(ctx context.Context, filter *Filter) (int, error)
}

// Filter defines query parameters for listing signups
type Filter struct {
	QueryFilter     *types.QueryFilter
	TimeRangeFilter *types.TimeRangeFilter
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
