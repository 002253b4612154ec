package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careerfair/jobfair-api/internal/api/handler/v1/response"
	"github.com/careerfair/jobfair-api/internal/api/middleware"
	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/service"
)

var errNoAdminInContext = errors.New("no admin in request context")

var (
	notFoundErrs = []error{
		service.ErrJobSeekerNotFound,
		service.ErrBoothNotFound,
		service.ErrAssignmentNotFound,
		service.ErrSlotNotFound,
		service.ErrEventNotFound,
		service.ErrEmployerNotFound,
	}
	conflictErrs = []error{
		service.ErrAlreadyAssigned,
		service.ErrBoothInactive,
		service.ErrJobSeekerNotApproved,
		service.ErrSlotUnavailable,
		service.ErrSlotNotInBooth,
		service.ErrSlotOverlap,
		service.ErrInvalidRegistrationTransition,
	}
	invalidInputErrs = []error{
		service.ErrInvalidStatus,
		service.ErrInvalidPriority,
		service.ErrInvalidSlotRange,
		service.ErrInvalidEventRange,
		service.ErrInvalidBoothSize,
	}
)

// renderServiceErr maps domain errors to 404, 409 or 400 and anything else to 500.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrResourceNotFound(target))
			return
		}
	}
	for _, target := range conflictErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrConflict(target))
			return
		}
	}
	for _, target := range invalidInputErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrInvalidInput(target))
			return
		}
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s %q", name, ctx.Param(name)))
	}

	return uint(id), nil
}

// parseIDQuery returns 0 when the query parameter is absent.
func parseIDQuery(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s %q", name, raw))
	}

	return uint(id), nil
}

func currentAdmin(ctx *gin.Context) (domain.User, *response.Err) {
	value, ok := ctx.Get(middleware.ContextKeyUser)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errNoAdminInContext)
	}

	user, ok := value.(domain.User)
	if !ok || !user.IsAdmin() {
		return domain.User{}, response.ErrPermissionDenied(errNoAdminInContext)
	}

	return user, nil
}
