package domain

import "time"

type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
	AssignmentNoShow    AssignmentStatus = "no_show"
)

var AssignmentStatuses = []AssignmentStatus{
	AssignmentAssigned,
	AssignmentConfirmed,
	AssignmentCompleted,
	AssignmentCancelled,
	AssignmentNoShow,
}

// ActiveAssignmentStatuses are the statuses that occupy a booth for a job seeker.
var ActiveAssignmentStatuses = []AssignmentStatus{AssignmentAssigned, AssignmentConfirmed}

func (s AssignmentStatus) IsValid() bool {
	for _, v := range AssignmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s AssignmentStatus) IsActive() bool {
	return s == AssignmentAssigned || s == AssignmentConfirmed
}

// SeekerStatus is the job seeker status implied by an assignment in status s.
func (s AssignmentStatus) SeekerStatus() SeekerAssignmentStatus {
	switch s {
	case AssignmentCancelled:
		return SeekerUnassigned
	case AssignmentConfirmed:
		return SeekerConfirmed
	case AssignmentCompleted:
		return SeekerCompleted
	default:
		return SeekerAssigned
	}
}

type BoothAssignment struct {
	ID          uint             `json:"id"`
	JobSeekerID uint             `json:"job_seeker_id"`
	BoothID     uint             `json:"booth_id"`
	SlotID      *uint            `json:"slot_id,omitempty"`
	Status      AssignmentStatus `json:"status"`
	Priority    Priority         `json:"priority"`
	Notes       string           `json:"notes"`
	AssignedBy  uint             `json:"assigned_by"`
	AssignedAt  time.Time        `json:"assigned_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	JobSeeker *JobSeeker     `json:"job_seeker,omitempty"`
	Slot      *InterviewSlot `json:"slot,omitempty"`
}

type AssignmentStatistics struct {
	EventID            uint                     `json:"event_id,omitempty"`
	TotalAssignments   int                      `json:"total_assignments"`
	ByStatus           map[AssignmentStatus]int `json:"by_status"`
	TotalJobSeekers    int                      `json:"total_job_seekers"`
	ApprovedJobSeekers int                      `json:"approved_job_seekers"`
	AssignedJobSeekers int                      `json:"assigned_job_seekers"`
	UnassignedSeekers  int                      `json:"unassigned_job_seekers"`
	ActiveBooths       int                      `json:"active_booths"`
	TotalCapacity      int                      `json:"total_capacity"`
	UtilizationPercent float64                  `json:"utilization_percent"`
}
