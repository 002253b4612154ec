package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerfair/jobfair-api/internal/api/handler/v1/request"
	"github.com/careerfair/jobfair-api/internal/api/handler/v1/response"
	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/service"
)

type AssignmentService interface {
	AssignJobSeekerToBooth(ctx context.Context, adminID uint, input service.AssignInput) (domain.BoothAssignment, error)
	BulkAssignJobSeekers(ctx context.Context, adminID uint, inputs []service.AssignInput) service.BulkAssignSummary
	UpdateAssignmentStatus(ctx context.Context, id uint, status domain.AssignmentStatus, notes string) (domain.BoothAssignment, error)
	RemoveBoothAssignment(ctx context.Context, id uint) (domain.BoothAssignment, error)
	GetUnassignedJobSeekers(ctx context.Context, filter service.JobSeekerFilter) ([]domain.JobSeeker, error)
	GetAvailableBooths(ctx context.Context, filter service.BoothFilter) ([]domain.AvailableBooth, error)
	GetAssignmentStatistics(ctx context.Context, eventID uint) (domain.AssignmentStatistics, error)
	GetBoothAssignments(ctx context.Context, boothID uint, filter service.AssignmentFilter) ([]domain.BoothAssignment, error)
}

type AssignmentHandler struct {
	svc AssignmentService
}

func NewAssignmentHandler(svc AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		svc: svc,
	}
}

// HandleAssign godoc
// @Summary      Assign a job seeker to a booth
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        request   body      request.AssignRequest true "request body"
// @Success      201  {object}  response.Action{data=domain.BoothAssignment}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /assignments [post]
// @Security BearerAuth
func (h *AssignmentHandler) HandleAssign(ctx *gin.Context) {
	admin, respErr := currentAdmin(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.AssignJobSeekerToBooth(ctx.Request.Context(), admin.ID, req.ToInput())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAssign -> h.svc.AssignJobSeekerToBooth", err)
		return
	}

	response.Render(ctx, http.StatusCreated, "job seeker assigned to booth", created)
}

// HandleBulkAssign godoc
// @Summary      Assign many job seekers at once
// @Description  Items are processed in batches. Each item reports its own outcome, so the call succeeds even when some items fail.
// @Description  Only an empty list or more than 500 items rejects the request.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        request   body      request.BulkAssignRequest true "request body"
// @Success      200  {object}  response.Action{data=service.BulkAssignSummary}
// @Failure      400  {object}  response.Err
// @Router       /assignments/bulk [post]
// @Security BearerAuth
func (h *AssignmentHandler) HandleBulkAssign(ctx *gin.Context) {
	admin, respErr := currentAdmin(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BulkAssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	summary := h.svc.BulkAssignJobSeekers(ctx.Request.Context(), admin.ID, req.ToInputs())

	response.Render(ctx, http.StatusOK, "bulk assignment processed", summary)
}

// HandleUpdateStatus godoc
// @Summary      Change the status of an assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        assignmentID  path      int  true  "assignment ID"
// @Param        request   body      request.UpdateAssignmentStatusRequest true "request body"
// @Success      200  {object}  response.Action{data=domain.BoothAssignment}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /assignments/{assignmentID}/status [patch]
// @Security BearerAuth
func (h *AssignmentHandler) HandleUpdateStatus(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "assignmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateAssignmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateAssignmentStatus(ctx.Request.Context(), id, req.Status, req.Notes)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateStatus -> h.svc.UpdateAssignmentStatus", err)
		return
	}

	response.Render(ctx, http.StatusOK, "assignment status updated", updated)
}

// HandleRemove godoc
// @Summary      Remove an assignment
// @Description  Deletes the assignment, frees its interview slot and marks the job seeker unassigned.
// @Tags         assignments
// @Produce      json
// @Param        assignmentID  path      int  true  "assignment ID"
// @Success      200  {object}  response.Action{data=domain.BoothAssignment}
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /assignments/{assignmentID} [delete]
// @Security BearerAuth
func (h *AssignmentHandler) HandleRemove(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "assignmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	removed, err := h.svc.RemoveBoothAssignment(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRemove -> h.svc.RemoveBoothAssignment", err)
		return
	}

	response.Render(ctx, http.StatusOK, "assignment removed", removed)
}

// HandleStatistics godoc
// @Summary      Assignment statistics
// @Tags         assignments
// @Produce      json
// @Param        event_id  query     int  false  "restrict to one event"
// @Success      200  {object}  response.Action{data=domain.AssignmentStatistics}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /assignments/statistics [get]
// @Security BearerAuth
func (h *AssignmentHandler) HandleStatistics(ctx *gin.Context) {
	eventID, respErr := parseIDQuery(ctx, "event_id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stats, err := h.svc.GetAssignmentStatistics(ctx.Request.Context(), eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleStatistics -> h.svc.GetAssignmentStatistics", err)
		return
	}

	response.Render(ctx, http.StatusOK, "statistics computed", stats)
}

// HandleUnassignedJobSeekers godoc
// @Summary      Approved job seekers without a booth
// @Description  Ordered by priority, high first.
// @Tags         job-seekers
// @Produce      json
// @Param        event_id  query     int     false  "event ID"
// @Param        priority  query     string  false  "priority level"  Enums(low, medium, high)
// @Param        search    query     string  false  "matches name or email"
// @Success      200  {object}  response.Action{data=[]domain.JobSeeker}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /job-seekers/unassigned [get]
// @Security BearerAuth
func (h *AssignmentHandler) HandleUnassignedJobSeekers(ctx *gin.Context) {
	eventID, respErr := parseIDQuery(ctx, "event_id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	seekers, err := h.svc.GetUnassignedJobSeekers(ctx.Request.Context(), service.JobSeekerFilter{
		EventID:  eventID,
		Priority: domain.Priority(ctx.Query("priority")),
		Search:   ctx.Query("search"),
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUnassignedJobSeekers -> h.svc.GetUnassignedJobSeekers", err)
		return
	}

	response.Render(ctx, http.StatusOK, "unassigned job seekers", seekers)
}

// HandleAvailableBooths godoc
// @Summary      Active booths with remaining capacity
// @Tags         booths
// @Produce      json
// @Param        event_id     query     int     false  "event ID"
// @Param        employer_id  query     int     false  "employer ID"
// @Param        search       query     string  false  "matches booth number or company"
// @Success      200  {object}  response.Action{data=[]domain.AvailableBooth}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booths/available [get]
// @Security BearerAuth
func (h *AssignmentHandler) HandleAvailableBooths(ctx *gin.Context) {
	eventID, respErr := parseIDQuery(ctx, "event_id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	employerID, respErr := parseIDQuery(ctx, "employer_id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	booths, err := h.svc.GetAvailableBooths(ctx.Request.Context(), service.BoothFilter{
		EventID:    eventID,
		EmployerID: employerID,
		Search:     ctx.Query("search"),
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAvailableBooths -> h.svc.GetAvailableBooths", err)
		return
	}

	response.Render(ctx, http.StatusOK, "available booths", booths)
}

// HandleBoothAssignments godoc
// @Summary      Assignments of one booth
// @Tags         booths
// @Produce      json
// @Param        boothID  path      int     true   "booth ID"
// @Param        status   query     string  false  "assignment status"  Enums(assigned, confirmed, completed, cancelled, no_show)
// @Param        search   query     string  false  "matches job seeker name or email"
// @Success      200  {object}  response.Action{data=[]domain.BoothAssignment}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booths/{boothID}/assignments [get]
// @Security BearerAuth
func (h *AssignmentHandler) HandleBoothAssignments(ctx *gin.Context) {
	boothID, respErr := parseIDParam(ctx, "boothID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	assignments, err := h.svc.GetBoothAssignments(ctx.Request.Context(), boothID, service.AssignmentFilter{
		Status: domain.AssignmentStatus(ctx.Query("status")),
		Search: ctx.Query("search"),
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleBoothAssignments -> h.svc.GetBoothAssignments", err)
		return
	}

	response.Render(ctx, http.StatusOK, "booth assignments", assignments)
}
