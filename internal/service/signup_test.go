package service

import (
	"strings"
	"testing"
	"time"

	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/testutil"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type SignupServiceSuite struct {
	testutil.BaseServiceTestSuite
	signupService SignupService
}

func TestSignupService(t *testing.T) {
	suite.Run(t, new(SignupServiceSuite))
}

func (s *SignupServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.signupService = NewSignupService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCache(),
		SignupRepo:     s.GetStores().SignupRepo,
		MembershipRepo: s.GetStores().MembershipRepo,
	})
}

func (s *SignupServiceSuite) TestCreateSignup() {
	resp, err := s.signupService.CreateSignup(s.GetContext(), &dto.CreateSignupRequest{
		Email:  "member@example.com",
		Source: "web",
	})
	s.NoError(err)
	s.True(strings.HasPrefix(resp.ID, "signup_"))
	s.Equal(types.DefaultTenantID, resp.TenantID)
	s.False(resp.CreatedAt.IsZero())
}

func (s *SignupServiceSuite) TestCreateSignupInvalidEmail() {
	resp, err := s.signupService.CreateSignup(s.GetContext(), &dto.CreateSignupRequest{
		Email: "not-an-email",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Nil(resp)
}

func (s *SignupServiceSuite) TestCreateSignupBackdated() {
	createdAt := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	resp, err := s.signupService.CreateSignup(s.GetContext(), &dto.CreateSignupRequest{
		Source:    "import",
		CreatedAt: &createdAt,
	})
	s.NoError(err)
	s.Equal(createdAt, resp.CreatedAt)
}

func (s *SignupServiceSuite) TestListSignupsTimeRange() {
	for i := 0; i < 3; i++ {
		createdAt := time.Date(2024, time.Month(i+1), 15, 0, 0, 0, 0, time.UTC)
		_, err := s.signupService.CreateSignup(s.GetContext(), &dto.CreateSignupRequest{
			Source:    "web",
			CreatedAt: &createdAt,
		})
		s.NoError(err)
	}

	filter := signup.NewFilter()
	filter.TimeRangeFilter = &types.TimeRangeFilter{
		StartTime: lo.ToPtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	}
	resp, err := s.signupService.ListSignups(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(2, resp.Total)
	s.Len(resp.Items, 2)
}
