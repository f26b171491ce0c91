package dto

import (
	"context"
	"time"

	"github.com/gymflow/gymflow/internal/domain/membership"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/shopspring/decimal"
)

// CreateMembershipRequest represents the request to enroll a member into a
// package
type CreateMembershipRequest struct {
	MemberID         string          `json:"member_id"`
	PackageName      string          `json:"package_name" validate:"required"`
	MembershipStatus string          `json:"membership_status" validate:"required"`
	Price            decimal.Decimal `json:"price"`

	// CreatedAt optionally backdates the record, used by data imports.
	// Defaults to now.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Validate validates the create membership request
func (r *CreateMembershipRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid membership payload").
			Mark(ierr.ErrValidation)
	}
	if r.Price.IsNegative() {
		return ierr.NewError("price cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"price": r.Price.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToMembership converts the request to a domain membership
func (r *CreateMembershipRequest) ToMembership(ctx context.Context) *membership.Membership {
	m := &membership.Membership{
		ID:               types.GenerateUUIDWithPrefix(types.UUIDPrefixMembership),
		MemberID:         r.MemberID,
		PackageName:      r.PackageName,
		MembershipStatus: r.MembershipStatus,
		Price:            r.Price,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
	if r.CreatedAt != nil {
		m.CreatedAt = r.CreatedAt.UTC()
	}
	return m
}

// MembershipResponse represents a membership in API responses
type MembershipResponse struct {
	*membership.Membership
}

// ListMembershipsResponse represents a page of memberships
type ListMembershipsResponse struct {
	Items []*MembershipResponse `json:"items"`
	Total int                   `json:"total"`
}
