package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerfair/jobfair-api/internal/api/handler/v1/request"
	"github.com/careerfair/jobfair-api/internal/api/handler/v1/response"
	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/repository"
)

type JobSeekerService interface {
	RegisterJobSeeker(ctx context.Context, seeker domain.JobSeeker) (domain.JobSeeker, error)
	GetJobSeeker(ctx context.Context, id uint) (domain.JobSeeker, error)
	ListJobSeekers(ctx context.Context, query repository.JobSeekerQuery) ([]domain.JobSeeker, error)
	ReviewRegistration(ctx context.Context, id uint, status domain.RegistrationStatus) (domain.JobSeeker, error)
}

type JobSeekerHandler struct {
	svc JobSeekerService
}

func NewJobSeekerHandler(svc JobSeekerService) *JobSeekerHandler {
	return &JobSeekerHandler{
		svc: svc,
	}
}

// HandleRegister godoc
// @Summary      Register a job seeker for an event
// @Description  New registrations start pending and must be approved before assignment.
// @Tags         job-seekers
// @Accept       json
// @Produce      json
// @Param        request   body      request.RegisterJobSeekerRequest true "request body"
// @Success      201  {object}  response.Action{data=domain.JobSeeker}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /job-seekers [post]
// @Security BearerAuth
func (h *JobSeekerHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterJobSeekerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	seeker, err := h.svc.RegisterJobSeeker(ctx.Request.Context(), domain.JobSeeker{
		EventID:       req.EventID,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		PriorityLevel: req.PriorityLevel,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegister -> h.svc.RegisterJobSeeker", err)
		return
	}

	response.Render(ctx, http.StatusCreated, "job seeker registered", seeker)
}

// HandleList godoc
// @Summary      List job seekers
// @Tags         job-seekers
// @Produce      json
// @Param        event_id             query     int     false  "event ID"
// @Param        registration_status  query     string  false  "registration status"  Enums(pending, approved, rejected)
// @Param        assignment_status    query     string  false  "assignment status"    Enums(unassigned, assigned, confirmed, completed)
// @Param        priority             query     string  false  "priority level"       Enums(low, medium, high)
// @Success      200  {object}  response.Action{data=[]domain.JobSeeker}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /job-seekers [get]
// @Security BearerAuth
func (h *JobSeekerHandler) HandleList(ctx *gin.Context) {
	eventID, respErr := parseIDQuery(ctx, "event_id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	seekers, err := h.svc.ListJobSeekers(ctx.Request.Context(), repository.JobSeekerQuery{
		EventID:            eventID,
		RegistrationStatus: domain.RegistrationStatus(ctx.Query("registration_status")),
		AssignmentStatus:   domain.SeekerAssignmentStatus(ctx.Query("assignment_status")),
		PriorityLevel:      domain.Priority(ctx.Query("priority")),
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleList -> h.svc.ListJobSeekers", err)
		return
	}

	response.Render(ctx, http.StatusOK, "job seekers", seekers)
}

// HandleGet godoc
// @Summary      Get a job seeker
// @Tags         job-seekers
// @Produce      json
// @Param        jobSeekerID  path      int  true  "job seeker ID"
// @Success      200  {object}  response.Action{data=domain.JobSeeker}
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /job-seekers/{jobSeekerID} [get]
// @Security BearerAuth
func (h *JobSeekerHandler) HandleGet(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "jobSeekerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	seeker, err := h.svc.GetJobSeeker(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGet -> h.svc.GetJobSeeker", err)
		return
	}

	response.Render(ctx, http.StatusOK, "job seeker found", seeker)
}

// HandleReview godoc
// @Summary      Approve or reject a registration
// @Tags         job-seekers
// @Accept       json
// @Produce      json
// @Param        jobSeekerID  path      int  true  "job seeker ID"
// @Param        request   body      request.ReviewRegistrationRequest true "request body"
// @Success      200  {object}  response.Action{data=domain.JobSeeker}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /job-seekers/{jobSeekerID}/registration [patch]
// @Security BearerAuth
func (h *JobSeekerHandler) HandleReview(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "jobSeekerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ReviewRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	seeker, err := h.svc.ReviewRegistration(ctx.Request.Context(), id, req.Status)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleReview -> h.svc.ReviewRegistration", err)
		return
	}

	response.Render(ctx, http.StatusOK, "registration reviewed", seeker)
}
