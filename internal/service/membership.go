package service

import (
	"context"
	"fmt"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/membership"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
)

// MembershipService manages membership subscription records
type MembershipService interface {
	CreateMembership(ctx context.Context, req *dto.CreateMembershipRequest) (*dto.MembershipResponse, error)
	ListMemberships(ctx context.Context, filter *membership.Filter) (*dto.ListMembershipsResponse, error)
}

type membershipService struct {
	ServiceParams
}

// NewMembershipService creates a new membership service
func NewMembershipService(params ServiceParams) MembershipService {
	return &membershipService{
		ServiceParams: params,
	}
}

func (s *membershipService) CreateMembership(ctx context.Context, req *dto.CreateMembershipRequest) (*dto.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m := req.ToMembership(ctx)
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.MembershipRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	// New rows invalidate any cached roster snapshot for this tenant
	s.Cache.DeleteByPrefix(ctx, fmt.Sprintf("analytics:roster:%s", types.GetTenantID(ctx)))

	s.Logger.Infow("created membership",
		"membership_id", m.ID,
		"package_name", m.PackageName,
		"membership_status", m.MembershipStatus,
	)
	return &dto.MembershipResponse{Membership: m}, nil
}

func (s *membershipService) ListMemberships(ctx context.Context, filter *membership.Filter) (*dto.ListMembershipsResponse, error) {
	if filter == nil {
		filter = membership.NewFilter()
	}

	memberships, err := s.MembershipRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.MembershipRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListMembershipsResponse{
		Items: lo.Map(memberships, func(m *membership.Membership, _ int) *dto.MembershipResponse {
			return &dto.MembershipResponse{Membership: m}
		}),
		Total: total,
	}, nil
}
