package postgres

import (
	"context"
	"fmt"

	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	pgclient "github.com/gymflow/gymflow/internal/postgres"
	"github.com/gymflow/gymflow/internal/types"
)

type signupRepository struct {
	client *pgclient.Client
	log    *logger.Logger
}

// NewSignupRepository creates a Postgres-backed signup repository
func NewSignupRepository(client *pgclient.Client, log *logger.Logger) signup.Repository {
	return &signupRepository{client: client, log: log}
}

func (r *signupRepository) Create(ctx context.Context, s *signup.Signup) error {
	query := `
		INSERT INTO signups (id, email, source, tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.client.DB().ExecContext(ctx, query,
		s.ID, s.Email, s.Source,
		s.TenantID, s.Status, s.CreatedAt, s.UpdatedAt, s.CreatedBy, s.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create signup").
			WithReportableDetails(map[string]interface{}{
				"id": s.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *signupRepository) List(ctx context.Context, filter *signup.Filter) ([]*signup.Signup, error) {
	query := `
		SELECT id, email, source, tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM signups
		WHERE tenant_id = $1 AND status = $2`
	args := []interface{}{types.GetTenantID(ctx), types.StatusPublished}

	query, args = applyTimeRange(query, args, filter.TimeRangeFilter)
	query += " ORDER BY created_at ASC"
	query, args = applyPagination(query, args, filter)

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list signups").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var signups []*signup.Signup
	for rows.Next() {
		var s signup.Signup
		if err := rows.Scan(
			&s.ID, &s.Email, &s.Source,
			&s.TenantID, &s.Status, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy,
		); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan signup row").
				Mark(ierr.ErrDatabase)
		}
		signups = append(signups, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to iterate signup rows").
			Mark(ierr.ErrDatabase)
	}
	return signups, nil
}

func (r *signupRepository) Count(ctx context.Context, filter *signup.Filter) (int, error) {
	query := `SELECT COUNT(*) FROM signups WHERE tenant_id = $1 AND status = $2`
	args := []interface{}{types.GetTenantID(ctx), types.StatusPublished}
	query, args = applyTimeRange(query, args, filter.TimeRangeFilter)

	var count int
	if err := r.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count signups").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

// applyTimeRange appends created_at bounds to the query
func applyTimeRange(query string, args []interface{}, tr *types.TimeRangeFilter) (string, []interface{}) {
	if tr == nil {
		return query, args
	}
	if tr.StartTime != nil {
		args = append(args, *tr.StartTime)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if tr.EndTime != nil {
		args = append(args, *tr.EndTime)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return query, args
}

// applyPagination appends LIMIT/OFFSET when the filter asks for a page
func applyPagination(query string, args []interface{}, filter interface {
	GetLimit() int
	GetOffset() int
}) (string, []interface{}) {
	if limit := filter.GetLimit(); limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset := filter.GetOffset(); offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}
