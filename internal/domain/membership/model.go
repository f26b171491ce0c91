package membership

import (
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/shopspring/decimal"
)

// Membership represents one membership subscription row. PackageName and
// MembershipStatus are free-form upstream labels and may arrive empty;
// Normalized() maps them to the Unknown sentinel before aggregation.
type Membership struct {
	ID               string          `json:"id"`
	MemberID         string          `json:"member_id,omitempty"`
	PackageName      string          `json:"package_name"`
	MembershipStatus string          `json:"membership_status"`
	Price            decimal.Decimal `json:"price"`
	types.BaseModel
}

// Normalized returns a copy with missing labels replaced by the Unknown
// sentinel and a negative price clamped to zero. Every reducer operates on
// normalized records so the folds never see an empty bucket key.
func (m *Membership) Normalized() *Membership {
	out := *m
	if out.PackageName == "" {
		out.PackageName = types.UnknownLabel
	}
	if out.MembershipStatus == "" {
		out.MembershipStatus = types.UnknownLabel
	}
	if out.Price.IsNegative() {
		out.Price = decimal.Zero
	}
	return &out
}

// Validate validates the membership
func (m *Membership) Validate() error {
	if m.ID == "" {
		return ierr.NewError("id is required").Mark(ierr.ErrValidation)
	}
	if m.CreatedAt.IsZero() {
		return ierr.NewError("created_at is required").
			WithHint("Membership records must carry a creation timestamp").
			Mark(ierr.ErrValidation)
	}
	if m.Price.IsNegative() {
		return ierr.NewError("price cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"price": m.Price.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
