package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/signup"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/service"
	"github.com/gymflow/gymflow/internal/types"
)

type SignupHandler struct {
	signupService service.SignupService
	logger        *logger.Logger
}

func NewSignupHandler(
	signupService service.SignupService,
	logger *logger.Logger,
) *SignupHandler {
	return &SignupHandler{
		signupService: signupService,
		logger:        logger,
	}
}

// CreateSignup records a member signup
func (h *SignupHandler) CreateSignup(c *gin.Context) {
	var req dto.CreateSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid signup payload").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.signupService.CreateSignup(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListSignups returns a page of the tenant's signups
func (h *SignupHandler) ListSignups(c *gin.Context) {
	filter := signup.NewFilter()
	if err := c.ShouldBindQuery(filter.QueryFilter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}
	filter.TimeRangeFilter = &types.TimeRangeFilter{}
	if err := c.ShouldBindQuery(filter.TimeRangeFilter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid time range parameters").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.signupService.ListSignups(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
