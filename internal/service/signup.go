package service

import (
	"context"
	"fmt"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/signup"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
)

// SignupService records and lists member signups
type SignupService interface {
	CreateSignup(ctx context.Context, req *dto.CreateSignupRequest) (*dto.SignupResponse, error)
	ListSignups(ctx context.Context, filter *signup.Filter) (*dto.ListSignupsResponse, error)
}

type signupService struct {
	ServiceParams
}

// NewSignupService creates a new signup service
func NewSignupService(params ServiceParams) SignupService {
	return &signupService{
		ServiceParams: params,
	}
}

func (s *signupService) CreateSignup(ctx context.Context, req *dto.CreateSignupRequest) (*dto.SignupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	su := req.ToSignup(ctx)
	if err := su.Validate(); err != nil {
		return nil, err
	}

	if err := s.SignupRepo.Create(ctx, su); err != nil {
		return nil, err
	}

	// New rows invalidate any cached roster snapshot for this tenant
	s.Cache.DeleteByPrefix(ctx, fmt.Sprintf("analytics:roster:%s", types.GetTenantID(ctx)))

	s.Logger.Infow("recorded signup", "signup_id", su.ID, "source", su.Source)
	return &dto.SignupResponse{Signup: su}, nil
}

func (s *signupService) ListSignups(ctx context.Context, filter *signup.Filter) (*dto.ListSignupsResponse, error) {
	if filter == nil {
		filter = signup.NewFilter()
	}

	signups, err := s.SignupRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.SignupRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListSignupsResponse{
		Items: lo.Map(signups, func(su *signup.Signup, _ int) *dto.SignupResponse {
			return &dto.SignupResponse{Signup: su}
		}),
		Total: total,
	}, nil
}
