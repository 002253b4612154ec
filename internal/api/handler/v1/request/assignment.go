package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/service"
)

const maxBulkAssignments = 500

var (
	priorities         = []interface{}{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}
	assignmentStatuses = []interface{}{
		domain.AssignmentAssigned,
		domain.AssignmentConfirmed,
		domain.AssignmentCompleted,
		domain.AssignmentCancelled,
		domain.AssignmentNoShow,
	}
)

type AssignRequest struct {
	JobSeekerID uint            `json:"job_seeker_id"`
	BoothID     uint            `json:"booth_id"`
	SlotID      *uint           `json:"slot_id,omitempty"`
	Notes       string          `json:"notes"`
	Priority    domain.Priority `json:"priority" enums:"low,medium,high"`
}

func (req AssignRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.JobSeekerID, validation.Required),
		validation.Field(&req.BoothID, validation.Required),
		validation.Field(&req.SlotID, validation.NilOrNotEmpty),
		validation.Field(&req.Notes, validation.Length(0, 1000)),
		validation.Field(&req.Priority, validation.In(priorities...)),
	)
}

func (req AssignRequest) ToInput() service.AssignInput {
	return service.AssignInput{
		JobSeekerID: req.JobSeekerID,
		BoothID:     req.BoothID,
		SlotID:      req.SlotID,
		Notes:       req.Notes,
		Priority:    req.Priority,
	}
}

// BulkAssignItem carries one bulk entry. It has no Validate method: item problems are
// reported per item in the bulk summary instead of rejecting the request.
type BulkAssignItem AssignRequest

// BulkAssignRequest only checks the envelope. A bad item never blocks the others.
type BulkAssignRequest struct {
	Assignments []BulkAssignItem `json:"assignments"`
}

func (req *BulkAssignRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Assignments, validation.Required, validation.Length(1, maxBulkAssignments)),
	)
}

func (req *BulkAssignRequest) ToInputs() []service.AssignInput {
	inputs := make([]service.AssignInput, len(req.Assignments))
	for i, item := range req.Assignments {
		inputs[i] = AssignRequest(item).ToInput()
	}
	return inputs
}

type UpdateAssignmentStatusRequest struct {
	Status domain.AssignmentStatus `json:"status" enums:"assigned,confirmed,completed,cancelled,no_show"`
	Notes  string                  `json:"notes"`
}

func (req *UpdateAssignmentStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(assignmentStatuses...)),
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}
