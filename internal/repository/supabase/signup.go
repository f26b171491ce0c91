package supabase

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gymflow/gymflow/internal/domain/signup"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
)

const signupsTable = "signups"

// signupRow is the wire shape of a signups row in Supabase. Nullable columns
// are pointers; mapping to the domain model defaults them.
type signupRow struct {
	ID        string  `json:"id"`
	Email     *string `json:"email"`
	Source    *string `json:"source"`
	TenantID  string  `json:"tenant_id"`
	CreatedAt *string `json:"created_at"`
}

type signupRepository struct {
	client *Client
	log    *logger.Logger
}

// NewSignupRepository creates a Supabase-backed signup repository
func NewSignupRepository(client *Client, log *logger.Logger) signup.Repository {
	return &signupRepository{client: client, log: log}
}

func (r *signupRepository) Create(ctx context.Context, s *signup.Signup) error {
	row := map[string]interface{}{
		"id":         s.ID,
		"email":      s.Email,
		"source":     s.Source,
		"tenant_id":  s.TenantID,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339),
	}
	return r.client.Insert(ctx, signupsTable, row)
}

func (r *signupRepository) List(ctx context.Context, filter *signup.Filter) ([]*signup.Signup, error) {
	query := baseQuery(ctx, filter.TimeRangeFilter)
	query.Set("order", "created_at.asc")
	applyRange(query, filter)

	var rows []signupRow
	if err := r.client.Get(ctx, signupsTable, query, &rows); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row signupRow, _ int) *signup.Signup {
		return row.toDomain()
	}), nil
}

func (r *signupRepository) Count(ctx context.Context, filter *signup.Filter) (int, error) {
	return r.client.Count(ctx, signupsTable, baseQuery(ctx, filter.TimeRangeFilter))
}

func (row signupRow) toDomain() *signup.Signup {
	return &signup.Signup{
		ID:     row.ID,
		Email:  lo.FromPtr(row.Email),
		Source: lo.FromPtr(row.Source),
		BaseModel: types.BaseModel{
			TenantID:  row.TenantID,
			Status:    types.StatusPublished,
			CreatedAt: parseTimestamp(row.CreatedAt),
		},
	}
}

// parseTimestamp maps a missing or malformed upstream timestamp to the zero
// time; the aggregator excludes such rows from time-bucketed series and
// reports them as skipped
func parseTimestamp(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// baseQuery scopes every read to the tenant in the context
func baseQuery(ctx context.Context, tr *types.TimeRangeFilter) url.Values {
	query := url.Values{}
	query.Set("tenant_id", "eq."+types.GetTenantID(ctx))
	if tr != nil {
		if tr.StartTime != nil {
			query.Add("created_at", "gte."+tr.StartTime.UTC().Format(time.RFC3339))
		}
		if tr.EndTime != nil {
			query.Add("created_at", "lte."+tr.EndTime.UTC().Format(time.RFC3339))
		}
	}
	return query
}

func applyRange(query url.Values, filter interface {
	GetLimit() int
	GetOffset() int
}) {
	if limit := filter.GetLimit(); limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset := filter.GetOffset(); offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
}
