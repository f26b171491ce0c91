package repository

import (
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/domain/membership"
	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	pgclient "github.com/gymflow/gymflow/internal/postgres"
	pgrepo "github.com/gymflow/gymflow/internal/repository/postgres"
	sbrepo "github.com/gymflow/gymflow/internal/repository/supabase"
)

// Repositories bundles the data-source collaborators behind the analytics
// pipeline. The backing store is selected by analytics.store in config.
type Repositories struct {
	Signup     signup.Repository
	Membership membership.Repository
}

// New builds the repository set for the configured store
func New(cfg *config.Configuration, log *logger.Logger) (*Repositories, error) {
	switch cfg.Analytics.Store {
	case "supabase":
		client, err := sbrepo.NewClient(cfg, log)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Signup:     sbrepo.NewSignupRepository(client, log),
			Membership: sbrepo.NewMembershipRepository(client, log),
		}, nil
	case "postgres":
		client, err := pgclient.NewClient(cfg, log)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Signup:     pgrepo.NewSignupRepository(client, log),
			Membership: pgrepo.NewMembershipRepository(client, log),
		}, nil
	default:
		return nil, ierr.NewError("unsupported analytics store").
			WithReportableDetails(map[string]interface{}{
				"store": cfg.Analytics.Store,
			}).
			Mark(ierr.ErrValidation)
	}
}
