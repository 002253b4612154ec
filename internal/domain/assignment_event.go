package domain

import "time"

type AssignmentEventType string

const (
	EventAssignmentCreated       AssignmentEventType = "assignment.created"
	EventAssignmentStatusChanged AssignmentEventType = "assignment.status_changed"
	EventAssignmentRemoved       AssignmentEventType = "assignment.removed"
)

// AssignmentEvent is published after an assignment change has been committed.
type AssignmentEvent struct {
	Type         AssignmentEventType `json:"type"`
	AssignmentID uint                `json:"assignment_id"`
	JobSeekerID  uint                `json:"job_seeker_id"`
	BoothID      uint                `json:"booth_id"`
	SlotID       *uint               `json:"slot_id,omitempty"`
	Status       AssignmentStatus    `json:"status,omitempty"`
	OccurredAt   time.Time           `json:"occurred_at"`
}
