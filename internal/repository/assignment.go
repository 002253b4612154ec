package repository

import (
	"context"
	"fmt"

	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
)

var (
	ErrJobSeekerNotApproved = dao.ErrJobSeekerNotReady
	ErrBoothInactive        = dao.ErrBoothInactive
	ErrAlreadyAssigned      = dao.ErrAlreadyAssigned
	ErrAssignmentNotFound   = dao.ErrAssignmentNotFound
	ErrSlotNotFound         = dao.ErrSlotNotFound
	ErrSlotNotInBooth       = dao.ErrSlotNotInBooth
	ErrSlotUnavailable      = dao.ErrSlotUnavailable
)

type AssignmentDAO interface {
	Assign(ctx context.Context, assignment dao.BoothAssignment) (dao.BoothAssignment, error)
	UpdateStatus(ctx context.Context, id uint, change dao.StatusChange) (dao.BoothAssignment, error)
	Delete(ctx context.Context, id uint) (dao.BoothAssignment, error)
	FindByID(ctx context.Context, id uint) (dao.BoothAssignment, error)
	List(ctx context.Context, filter dao.AssignmentFilter) ([]dao.BoothAssignment, error)
	ActiveLoadByBooth(ctx context.Context, boothIDs []uint) ([]dao.BoothLoad, error)
	CountByStatus(ctx context.Context, eventID uint) ([]dao.StatusCount, error)
	CountSeekers(ctx context.Context, eventID uint) ([]dao.SeekerCount, error)
}

// SeekerCounts aggregates job seekers of an event by registration and assignment status.
type SeekerCounts struct {
	Total      int
	Approved   int
	Assigned   int
	Unassigned int
}

type AssignmentRepository struct {
	dao AssignmentDAO
}

func NewAssignmentRepository(dao AssignmentDAO) *AssignmentRepository {
	return &AssignmentRepository{
		dao: dao,
	}
}

func (r *AssignmentRepository) Assign(ctx context.Context, assignment domain.BoothAssignment) (domain.BoothAssignment, error) {
	created, err := r.dao.Assign(ctx, dao.BoothAssignment{
		JobSeekerID: assignment.JobSeekerID,
		BoothID:     assignment.BoothID,
		SlotID:      assignment.SlotID,
		Status:      string(assignment.Status),
		Priority:    string(assignment.Priority),
		Notes:       assignment.Notes,
		AssignedBy:  assignment.AssignedBy,
		AssignedAt:  assignment.AssignedAt,
	})
	if err != nil {
		return domain.BoothAssignment{}, fmt.Errorf("r.dao.Assign -> %w", err)
	}

	return assignmentDaoToDomain(created), nil
}

// UpdateStatus moves an assignment to status and keeps its job seeker in lock-step.
// Cancelling releases the interview slot.
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, id uint, status domain.AssignmentStatus, notes string) (domain.BoothAssignment, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, dao.StatusChange{
		Status:       string(status),
		SeekerStatus: string(status.SeekerStatus()),
		Notes:        notes,
		ReleaseSlot:  status == domain.AssignmentCancelled,
	})
	if err != nil {
		return domain.BoothAssignment{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return assignmentDaoToDomain(updated), nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uint) (domain.BoothAssignment, error) {
	deleted, err := r.dao.Delete(ctx, id)
	if err != nil {
		return domain.BoothAssignment{}, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return assignmentDaoToDomain(deleted), nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uint) (domain.BoothAssignment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.BoothAssignment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return assignmentDaoToDomain(found), nil
}

func (r *AssignmentRepository) ListByBooth(ctx context.Context, boothID uint, status domain.AssignmentStatus) ([]domain.BoothAssignment, error) {
	found, err := r.dao.List(ctx, dao.AssignmentFilter{
		BoothID: boothID,
		Status:  string(status),
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	assignments := make([]domain.BoothAssignment, len(found))
	for i, a := range found {
		assignments[i] = assignmentDaoToDomain(a)
	}
	return assignments, nil
}

// ActiveLoad returns the number of active assignments per booth ID.
func (r *AssignmentRepository) ActiveLoad(ctx context.Context, boothIDs []uint) (map[uint]int, error) {
	loads, err := r.dao.ActiveLoadByBooth(ctx, boothIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ActiveLoadByBooth -> %w", err)
	}

	byBooth := make(map[uint]int, len(loads))
	for _, l := range loads {
		byBooth[l.BoothID] = l.Count
	}
	return byBooth, nil
}

func (r *AssignmentRepository) CountByStatus(ctx context.Context, eventID uint) (map[domain.AssignmentStatus]int, error) {
	counts, err := r.dao.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	byStatus := make(map[domain.AssignmentStatus]int, len(domain.AssignmentStatuses))
	for _, s := range domain.AssignmentStatuses {
		byStatus[s] = 0
	}
	for _, c := range counts {
		byStatus[domain.AssignmentStatus(c.Status)] = c.Count
	}
	return byStatus, nil
}

func (r *AssignmentRepository) CountSeekers(ctx context.Context, eventID uint) (SeekerCounts, error) {
	counts, err := r.dao.CountSeekers(ctx, eventID)
	if err != nil {
		return SeekerCounts{}, fmt.Errorf("r.dao.CountSeekers -> %w", err)
	}

	var result SeekerCounts
	for _, c := range counts {
		result.Total += c.Count
		if domain.RegistrationStatus(c.RegistrationStatus) == domain.RegistrationApproved {
			result.Approved += c.Count
		}
		if domain.SeekerAssignmentStatus(c.AssignmentStatus) == domain.SeekerUnassigned {
			result.Unassigned += c.Count
		} else {
			result.Assigned += c.Count
		}
	}
	return result, nil
}

func assignmentDaoToDomain(a dao.BoothAssignment) domain.BoothAssignment {
	assignment := domain.BoothAssignment{
		ID:          a.ID,
		JobSeekerID: a.JobSeekerID,
		BoothID:     a.BoothID,
		SlotID:      a.SlotID,
		Status:      domain.AssignmentStatus(a.Status),
		Priority:    domain.Priority(a.Priority),
		Notes:       a.Notes,
		AssignedBy:  a.AssignedBy,
		AssignedAt:  a.AssignedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if a.JobSeeker != nil {
		seeker := jobSeekerDaoToDomain(*a.JobSeeker)
		assignment.JobSeeker = &seeker
	}
	if a.Slot != nil {
		slot := slotDaoToDomain(*a.Slot)
		assignment.Slot = &slot
	}

	return assignment
}
