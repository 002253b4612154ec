package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/repository"
)

var (
	ErrJobSeekerNotFound             = repository.ErrJobSeekerNotFound
	ErrInvalidRegistrationTransition = errors.New("registration status transition is not allowed")
)

type JobSeekerRepository interface {
	Create(ctx context.Context, seeker domain.JobSeeker) (domain.JobSeeker, error)
	FindByID(ctx context.Context, id uint) (domain.JobSeeker, error)
	List(ctx context.Context, query repository.JobSeekerQuery) ([]domain.JobSeeker, error)
	UpdateRegistrationStatus(ctx context.Context, id uint, status domain.RegistrationStatus) (domain.JobSeeker, error)
}

type JobSeekerService struct {
	repo  JobSeekerRepository
	cache StatsCache
}

func NewJobSeekerService(repo JobSeekerRepository, cache StatsCache) *JobSeekerService {
	return &JobSeekerService{
		repo:  repo,
		cache: cache,
	}
}

// RegisterJobSeeker stores a new, pending and unassigned job seeker.
func (s *JobSeekerService) RegisterJobSeeker(ctx context.Context, seeker domain.JobSeeker) (domain.JobSeeker, error) {
	if seeker.PriorityLevel == "" {
		seeker.PriorityLevel = domain.PriorityMedium
	}
	if !seeker.PriorityLevel.IsValid() {
		return domain.JobSeeker{}, ErrInvalidPriority
	}
	seeker.RegistrationStatus = domain.RegistrationPending
	seeker.AssignmentStatus = domain.SeekerUnassigned

	created, err := s.repo.Create(ctx, seeker)
	if err != nil {
		return domain.JobSeeker{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.invalidateStats(ctx)

	return created, nil
}

func (s *JobSeekerService) GetJobSeeker(ctx context.Context, id uint) (domain.JobSeeker, error) {
	seeker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.JobSeeker{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return seeker, nil
}

func (s *JobSeekerService) ListJobSeekers(ctx context.Context, query repository.JobSeekerQuery) ([]domain.JobSeeker, error) {
	seekers, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return seekers, nil
}

// ReviewRegistration approves or rejects a registration. Approved registrations are final.
func (s *JobSeekerService) ReviewRegistration(ctx context.Context, id uint, status domain.RegistrationStatus) (domain.JobSeeker, error) {
	seeker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.JobSeeker{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !seeker.CanTransitionTo(status) {
		return domain.JobSeeker{}, ErrInvalidRegistrationTransition
	}

	updated, err := s.repo.UpdateRegistrationStatus(ctx, id, status)
	if err != nil {
		return domain.JobSeeker{}, fmt.Errorf("s.repo.UpdateRegistrationStatus -> %w", err)
	}

	s.invalidateStats(ctx)

	return updated, nil
}

func (s *JobSeekerService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("failed to invalidate assignment statistics", zap.Error(err))
	}
}
