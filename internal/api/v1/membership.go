package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymflow/gymflow/internal/api/dto"
	"github.com/gymflow/gymflow/internal/domain/membership"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/service"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/samber/lo"
)

type MembershipHandler struct {
	membershipService service.MembershipService
	logger            *logger.Logger
}

func NewMembershipHandler(
	membershipService service.MembershipService,
	logger *logger.Logger,
) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		logger:            logger,
	}
}

// CreateMembership enrolls a member into a package
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	var req dto.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid membership payload").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.membershipService.CreateMembership(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListMemberships returns a page of the tenant's memberships
func (h *MembershipHandler) ListMemberships(c *gin.Context) {
	filter := membership.NewFilter()
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
	if pkg := c.QueryArray("package_name"); len(pkg) > 0 {
		filter.PackageNames = lo.Uniq(pkg)
	}
	if statuses := c.QueryArray("membership_status"); len(statuses) > 0 {
		filter.Statuses = lo.Uniq(statuses)
	}

	response, err := h.membershipService.ListMemberships(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
