package dto

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

var validate = validator.New()

// CreateSignupRequest represents the request to record a member signup
type CreateSignupRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Source string `json:"source"`

	// CreatedAt optionally backdates the record, used by data imports.
	// Defaults to now.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Validate validates the create signup request
func (r *CreateSignupRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid signup payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToSignup converts the request to a domain signup
func (r *CreateSignupRequest) ToSignup(ctx context.Context) *signup.Signup {
	s := &signup.Signup{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixSignup),
		Email:     r.Email,
		Source:    r.Source,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if r.CreatedAt != nil {
		s.CreatedAt = r.CreatedAt.UTC()
	}
	return s
}

// SignupResponse represents a signup in API responses
type SignupResponse struct {
	*signup.Signup
}

// ListSignupsResponse represents a page of signups
type ListSignupsResponse struct {
	Items []*SignupResponse `json:"items"`
	Total int               `json:"total"`
}
