package v1

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerfair/jobfair-api/internal/api/handler/v1/request"
	"github.com/careerfair/jobfair-api/internal/api/handler/v1/response"
	"github.com/careerfair/jobfair-api/internal/domain"
)

type FairService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEmployer(ctx context.Context, employer domain.Employer) (domain.Employer, error)
	ListEmployers(ctx context.Context) ([]domain.Employer, error)
	CreateBooth(ctx context.Context, booth domain.Booth) (domain.Booth, error)
	GetBooth(ctx context.Context, id uint) (domain.Booth, error)
	SetBoothActive(ctx context.Context, id uint, active bool) (domain.Booth, error)
	ListBooths(ctx context.Context, eventID uint) ([]domain.Booth, error)
	CreateInterviewSlot(ctx context.Context, boothID uint, start, end time.Time) (domain.InterviewSlot, error)
	ListInterviewSlots(ctx context.Context, boothID uint, onlyFree bool) ([]domain.InterviewSlot, error)
}

type FairHandler struct {
	svc FairService
}

func NewFairHandler(svc FairService) *FairHandler {
	return &FairHandler{
		svc: svc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create a job fair event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201  {object}  response.Action{data=domain.Event}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *FairHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Name:     req.Name,
		Venue:    req.Venue,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEvent -> h.svc.CreateEvent", err)
		return
	}

	response.Render(ctx, http.StatusCreated, "event created", event)
}

// HandleListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.Action{data=[]domain.Event}
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *FairHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEvents -> h.svc.ListEvents", err)
		return
	}

	response.Render(ctx, http.StatusOK, "events", events)
}

// HandleListEventBooths godoc
// @Summary      List all booths of an event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  response.Action{data=[]domain.Booth}
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/booths [get]
// @Security BearerAuth
func (h *FairHandler) HandleListEventBooths(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	booths, err := h.svc.ListBooths(ctx.Request.Context(), eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEventBooths -> h.svc.ListBooths", err)
		return
	}

	response.Render(ctx, http.StatusOK, "booths", booths)
}

// HandleCreateEmployer godoc
// @Summary      Create an employer
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateEmployerRequest true "request body"
// @Success      201  {object}  response.Action{data=domain.Employer}
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /employers [post]
// @Security BearerAuth
func (h *FairHandler) HandleCreateEmployer(ctx *gin.Context) {
	var req request.CreateEmployerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	employer, err := h.svc.CreateEmployer(ctx.Request.Context(), domain.Employer{
		CompanyName:  req.CompanyName,
		Industry:     req.Industry,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEmployer -> h.svc.CreateEmployer", err)
		return
	}

	response.Render(ctx, http.StatusCreated, "employer created", employer)
}

// HandleListEmployers godoc
// @Summary      List employers
// @Tags         employers
// @Produce      json
// @Success      200  {object}  response.Action{data=[]domain.Employer}
// @Failure      500  {object}  response.Err
// @Router       /employers [get]
// @Security BearerAuth
func (h *FairHandler) HandleListEmployers(ctx *gin.Context) {
	employers, err := h.svc.ListEmployers(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEmployers -> h.svc.ListEmployers", err)
		return
	}

	response.Render(ctx, http.StatusOK, "employers", employers)
}

// HandleCreateBooth godoc
// @Summary      Create a booth
// @Tags         booths
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateBoothRequest true "request body"
// @Success      201  {object}  response.Action{data=domain.Booth}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booths [post]
// @Security BearerAuth
func (h *FairHandler) HandleCreateBooth(ctx *gin.Context) {
	var req request.CreateBoothRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booth, err := h.svc.CreateBooth(ctx.Request.Context(), domain.Booth{
		Number:     req.Number,
		EventID:    req.EventID,
		EmployerID: req.EmployerID,
		Size:       req.Size,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateBooth -> h.svc.CreateBooth", err)
		return
	}

	response.Render(ctx, http.StatusCreated, "booth created", booth)
}

// HandleGetBooth godoc
// @Summary      Get a booth
// @Tags         booths
// @Produce      json
// @Param        boothID  path      int  true  "booth ID"
// @Success      200  {object}  response.Action{data=domain.Booth}
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booths/{boothID} [get]
// @Security BearerAuth
func (h *FairHandler) HandleGetBooth(ctx *gin.Context) {
	boothID, respErr := parseIDParam(ctx, "boothID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	booth, err := h.svc.GetBooth(ctx.Request.Context(), boothID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetBooth -> h.svc.GetBooth", err)
		return
	}

	response.Render(ctx, http.StatusOK, "booth found", booth)
}

// HandleSetBoothActive godoc
// @Summary      Open or close a booth
// @Tags         booths
// @Accept       json
// @Produce      json
// @Param        boothID  path      int  true  "booth ID"
// @Param        request   body      request.SetBoothActiveRequest true "request body"
// @Success      200  {object}  response.Action{data=domain.Booth}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booths/{boothID}/active [patch]
// @Security BearerAuth
func (h *FairHandler) HandleSetBoothActive(ctx *gin.Context) {
	boothID, respErr := parseIDParam(ctx, "boothID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetBoothActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booth, err := h.svc.SetBoothActive(ctx.Request.Context(), boothID, *req.IsActive)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSetBoothActive -> h.svc.SetBoothActive", err)
		return
	}

	response.Render(ctx, http.StatusOK, "booth updated", booth)
}

// HandleCreateSlot godoc
// @Summary      Add an interview slot to a booth
// @Tags         booths
// @Accept       json
// @Produce      json
// @Param        boothID  path      int  true  "booth ID"
// @Param        request   body      request.CreateInterviewSlotRequest true "request body"
// @Success      201  {object}  response.Action{data=domain.InterviewSlot}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booths/{boothID}/slots [post]
// @Security BearerAuth
func (h *FairHandler) HandleCreateSlot(ctx *gin.Context) {
	boothID, respErr := parseIDParam(ctx, "boothID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateInterviewSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	slot, err := h.svc.CreateInterviewSlot(ctx.Request.Context(), boothID, req.StartTime, req.EndTime)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateSlot -> h.svc.CreateInterviewSlot", err)
		return
	}

	response.Render(ctx, http.StatusCreated, "interview slot created", slot)
}

// HandleListSlots godoc
// @Summary      List interview slots of a booth
// @Tags         booths
// @Produce      json
// @Param        boothID  path      int   true   "booth ID"
// @Param        free     query     bool  false  "only slots without an assignment"
// @Success      200  {object}  response.Action{data=[]domain.InterviewSlot}
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /booths/{boothID}/slots [get]
// @Security BearerAuth
func (h *FairHandler) HandleListSlots(ctx *gin.Context) {
	boothID, respErr := parseIDParam(ctx, "boothID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	onlyFree := false
	if raw := ctx.Query("free"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		onlyFree = parsed
	}

	slots, err := h.svc.ListInterviewSlots(ctx.Request.Context(), boothID, onlyFree)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListSlots -> h.svc.ListInterviewSlots", err)
		return
	}

	response.Render(ctx, http.StatusOK, "interview slots", slots)
}
