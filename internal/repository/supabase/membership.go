package supabase

import (
	"context"
	"strings"
	"time"

	"github.com/gymflow/gymflow/internal/domain/membership"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const membershipsTable = "memberships"

// membershipRow is the wire shape of a memberships row in Supabase. The
// upstream "status" column is the membership's business status, not the
// record lifecycle status.
type membershipRow struct {
	ID          string   `json:"id"`
	MemberID    *string  `json:"member_id"`
	PackageName *string  `json:"package_name"`
	Status      *string  `json:"status"`
	Price       *float64 `json:"price"`
	TenantID    string   `json:"tenant_id"`
	CreatedAt   *string  `json:"created_at"`
}

type membershipRepository struct {
	client *Client
	log    *logger.Logger
}

// NewMembershipRepository creates a Supabase-backed membership repository
func NewMembershipRepository(client *Client, log *logger.Logger) membership.Repository {
	return &membershipRepository{client: client, log: log}
}

func (r *membershipRepository) Create(ctx context.Context, m *membership.Membership) error {
	price, _ := m.Price.Float64()
	row := map[string]interface{}{
		"id":           m.ID,
		"member_id":    m.MemberID,
		"package_name": m.PackageName,
		"status":       m.MembershipStatus,
		"price":        price,
		"tenant_id":    m.TenantID,
		"created_at":   m.CreatedAt.UTC().Format(time.RFC3339),
	}
	return r.client.Insert(ctx, membershipsTable, row)
}

func (r *membershipRepository) List(ctx context.Context, filter *membership.Filter) ([]*membership.Membership, error) {
	query := baseQuery(ctx, filter.TimeRangeFilter)
	query.Set("order", "created_at.asc")
	if len(filter.PackageNames) > 0 {
		query.Add("package_name", "in.("+strings.Join(filter.PackageNames, ",")+")")
	}
	if len(filter.Statuses) > 0 {
		query.Add("status", "in.("+strings.Join(filter.Statuses, ",")+")")
	}
	applyRange(query, filter)

	var rows []membershipRow
	if err := r.client.Get(ctx, membershipsTable, query, &rows); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row membershipRow, _ int) *membership.Membership {
		return row.toDomain()
	}), nil
}

func (r *membershipRepository) Count(ctx context.Context, filter *membership.Filter) (int, error) {
	return r.client.Count(ctx, membershipsTable, baseQuery(ctx, filter.TimeRangeFilter))
}

func (row membershipRow) toDomain() *membership.Membership {
	price := decimal.Zero
	if row.Price != nil {
		price = decimal.NewFromFloat(*row.Price)
	}
	return &membership.Membership{
		ID:               row.ID,
		MemberID:         lo.FromPtr(row.MemberID),
		PackageName:      lo.FromPtr(row.PackageName),
		MembershipStatus: lo.FromPtr(row.Status),
		Price:            price,
		BaseModel: types.BaseModel{
			TenantID:  row.TenantID,
			Status:    types.StatusPublished,
			CreatedAt: parseTimestamp(row.CreatedAt),
		},
	}
}
