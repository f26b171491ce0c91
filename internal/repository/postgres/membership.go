package postgres

import (
	"context"
	"fmt"

	"github.com/gymflow/gymflow/internal/domain/membership"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	pgclient "github.com/gymflow/gymflow/internal/postgres"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/lib/pq"
)

type membershipRepository struct {
	client *pgclient.Client
	log    *logger.Logger
}

// NewMembershipRepository creates a Postgres-backed membership repository
func NewMembershipRepository(client *pgclient.Client, log *logger.Logger) membership.Repository {
	return &membershipRepository{client: client, log: log}
}

func (r *membershipRepository) Create(ctx context.Context, m *membership.Membership) error {
	query := `
		INSERT INTO memberships (id, member_id, package_name, membership_status, price, tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.client.DB().ExecContext(ctx, query,
		m.ID, m.MemberID, m.PackageName, m.MembershipStatus, m.Price,
		m.TenantID, m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create membership").
			WithReportableDetails(map[string]interface{}{
				"id": m.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *membershipRepository) List(ctx context.Context, filter *membership.Filter) ([]*membership.Membership, error) {
	query, args := r.buildWhere(ctx, filter, `
		SELECT id, member_id, package_name, membership_status, price, tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM memberships
		WHERE tenant_id = $1 AND status = $2`)

	query += " ORDER BY created_at ASC"
	query, args = applyPagination(query, args, filter)

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list memberships").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var memberships []*membership.Membership
	for rows.Next() {
		var m membership.Membership
		if err := rows.Scan(
			&m.ID, &m.MemberID, &m.PackageName, &m.MembershipStatus, &m.Price,
			&m.TenantID, &m.Status, &m.CreatedAt, &m.UpdatedAt, &m.CreatedBy, &m.UpdatedBy,
		); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan membership row").
				Mark(ierr.ErrDatabase)
		}
		memberships = append(memberships, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to iterate membership rows").
			Mark(ierr.ErrDatabase)
	}
	return memberships, nil
}

func (r *membershipRepository) Count(ctx context.Context, filter *membership.Filter) (int, error) {
	query, args := r.buildWhere(ctx, filter,
		`SELECT COUNT(*) FROM memberships WHERE tenant_id = $1 AND status = $2`)

	var count int
	if err := r.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count memberships").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *membershipRepository) buildWhere(ctx context.Context, filter *membership.Filter, base string) (string, []interface{}) {
	query := base
	args := []interface{}{types.GetTenantID(ctx), types.StatusPublished}
	query, args = applyTimeRange(query, args, filter.TimeRangeFilter)

	if len(filter.PackageNames) > 0 {
		args = append(args, pq.Array(filter.PackageNames))
		query += fmt.Sprintf(" AND package_name = ANY($%d)", len(args))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, pq.Array(filter.Statuses))
		query += fmt.Sprintf(" AND membership_status = ANY($%d)", len(args))
	}
	return query, args
}
