package signup

import (
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
)

// Signup represents one member signup event for a gym. The creation timestamp
// lives on the embedded BaseModel and drives the growth series bucketing.
type Signup struct {
	ID     string `json:"id"`
	Email  string `json:"email,omitempty"`
	Source string `json:"source,omitempty"`
	types.BaseModel
}

// Validate validates the signup
func (s *Signup) Validate() error {
	if s.ID == "" {
		return ierr.NewError("id is required").Mark(ierr.ErrValidation)
	}
	if s.CreatedAt.IsZero() {
		return ierr.NewError("created_at is required").
			WithHint("Signup records must carry a creation timestamp").
			Mark(ierr.ErrValidation)
	}
	return nil
}
