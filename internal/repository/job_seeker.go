package repository

import (
	"context"
	"fmt"

	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
)

var (
	ErrJobSeekerNotFound = dao.ErrJobSeekerNotFound
)

type JobSeekerDAO interface {
	Insert(ctx context.Context, seeker dao.JobSeeker) (dao.JobSeeker, error)
	FindByID(ctx context.Context, id uint) (dao.JobSeeker, error)
	List(ctx context.Context, filter dao.JobSeekerFilter) ([]dao.JobSeeker, error)
	UpdateRegistrationStatus(ctx context.Context, id uint, status string) (dao.JobSeeker, error)
}

// JobSeekerQuery selects job seekers by exact column values. Empty fields match everything.
type JobSeekerQuery struct {
	EventID            uint
	RegistrationStatus domain.RegistrationStatus
	AssignmentStatus   domain.SeekerAssignmentStatus
	PriorityLevel      domain.Priority
}

type JobSeekerRepository struct {
	dao JobSeekerDAO
}

func NewJobSeekerRepository(dao JobSeekerDAO) *JobSeekerRepository {
	return &JobSeekerRepository{
		dao: dao,
	}
}

func (r *JobSeekerRepository) Create(ctx context.Context, seeker domain.JobSeeker) (domain.JobSeeker, error) {
	created, err := r.dao.Insert(ctx, dao.JobSeeker{
		EventID:            seeker.EventID,
		FullName:           seeker.FullName,
		Email:              seeker.Email,
		Phone:              seeker.Phone,
		RegistrationStatus: string(seeker.RegistrationStatus),
		AssignmentStatus:   string(seeker.AssignmentStatus),
		PriorityLevel:      string(seeker.PriorityLevel),
	})
	if err != nil {
		return domain.JobSeeker{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return jobSeekerDaoToDomain(created), nil
}

func (r *JobSeekerRepository) FindByID(ctx context.Context, id uint) (domain.JobSeeker, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.JobSeeker{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return jobSeekerDaoToDomain(found), nil
}

func (r *JobSeekerRepository) List(ctx context.Context, query JobSeekerQuery) ([]domain.JobSeeker, error) {
	found, err := r.dao.List(ctx, dao.JobSeekerFilter{
		EventID:            query.EventID,
		RegistrationStatus: string(query.RegistrationStatus),
		AssignmentStatus:   string(query.AssignmentStatus),
		PriorityLevel:      string(query.PriorityLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	seekers := make([]domain.JobSeeker, len(found))
	for i, s := range found {
		seekers[i] = jobSeekerDaoToDomain(s)
	}
	return seekers, nil
}

func (r *JobSeekerRepository) UpdateRegistrationStatus(ctx context.Context, id uint, status domain.RegistrationStatus) (domain.JobSeeker, error) {
	updated, err := r.dao.UpdateRegistrationStatus(ctx, id, string(status))
	if err != nil {
		return domain.JobSeeker{}, fmt.Errorf("r.dao.UpdateRegistrationStatus -> %w", err)
	}

	return jobSeekerDaoToDomain(updated), nil
}

func jobSeekerDaoToDomain(s dao.JobSeeker) domain.JobSeeker {
	return domain.JobSeeker{
		ID:                 s.ID,
		EventID:            s.EventID,
		FullName:           s.FullName,
		Email:              s.Email,
		Phone:              s.Phone,
		RegistrationStatus: domain.RegistrationStatus(s.RegistrationStatus),
		AssignmentStatus:   domain.SeekerAssignmentStatus(s.AssignmentStatus),
		PriorityLevel:      domain.Priority(s.PriorityLevel),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
