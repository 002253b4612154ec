package domain

import "time"

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// SeekerAssignmentStatus mirrors the status of a job seeker's latest booth assignment.
type SeekerAssignmentStatus string

const (
	SeekerUnassigned SeekerAssignmentStatus = "unassigned"
	SeekerAssigned   SeekerAssignmentStatus = "assigned"
	SeekerConfirmed  SeekerAssignmentStatus = "confirmed"
	SeekerCompleted  SeekerAssignmentStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityRanks = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

func (p Priority) IsValid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Rank orders priorities with high first. Unknown values sort last.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks)
}

type JobSeeker struct {
	ID                 uint                   `json:"id"`
	EventID            uint                   `json:"event_id"`
	FullName           string                 `json:"full_name"`
	Email              string                 `json:"email"`
	Phone              string                 `json:"phone"`
	RegistrationStatus RegistrationStatus     `json:"registration_status"`
	AssignmentStatus   SeekerAssignmentStatus `json:"assignment_status"`
	PriorityLevel      Priority               `json:"priority_level"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

func (j JobSeeker) IsApproved() bool {
	return j.RegistrationStatus == RegistrationApproved
}

// CanTransitionTo reports whether a registration review may move the seeker to next.
func (j JobSeeker) CanTransitionTo(next RegistrationStatus) bool {
	switch j.RegistrationStatus {
	case RegistrationPending:
		return next == RegistrationApproved || next == RegistrationRejected
	case RegistrationRejected:
		return next == RegistrationApproved
	default:
		return false
	}
}
