package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrEmployerNotFound  = repository.ErrEmployerNotFound
	ErrBoothNotFound     = repository.ErrBoothNotFound
	ErrSlotOverlap       = repository.ErrSlotOverlap
	ErrInvalidSlotRange  = errors.New("interview slot must end after it starts")
	ErrInvalidEventRange = errors.New("event must end after it starts")
	ErrInvalidBoothSize  = errors.New("invalid booth size")
)

type FairRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEventByID(ctx context.Context, id uint) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEmployer(ctx context.Context, employer domain.Employer) (domain.Employer, error)
	ListEmployers(ctx context.Context) ([]domain.Employer, error)
	CreateBooth(ctx context.Context, booth domain.Booth) (domain.Booth, error)
	GetBoothByID(ctx context.Context, id uint) (domain.Booth, error)
	ListBooths(ctx context.Context, eventID, employerID uint, onlyActive bool) ([]domain.Booth, error)
	SetBoothActive(ctx context.Context, id uint, active bool) (domain.Booth, error)
	CreateInterviewSlot(ctx context.Context, slot domain.InterviewSlot) (domain.InterviewSlot, error)
	ListInterviewSlots(ctx context.Context, boothID uint, onlyFree bool) ([]domain.InterviewSlot, error)
}

type FairService struct {
	repo  FairRepository
	cache StatsCache
}

func NewFairService(repo FairRepository, cache StatsCache) *FairService {
	return &FairService{
		repo:  repo,
		cache: cache,
	}
}

func (s *FairService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if !event.EndsAt.After(event.StartsAt) {
		return domain.Event{}, ErrInvalidEventRange
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.CreateEvent -> %w", err)
	}

	return created, nil
}

func (s *FairService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListEvents -> %w", err)
	}

	return events, nil
}

func (s *FairService) CreateEmployer(ctx context.Context, employer domain.Employer) (domain.Employer, error) {
	created, err := s.repo.CreateEmployer(ctx, employer)
	if err != nil {
		return domain.Employer{}, fmt.Errorf("s.repo.CreateEmployer -> %w", err)
	}

	return created, nil
}

func (s *FairService) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	employers, err := s.repo.ListEmployers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListEmployers -> %w", err)
	}

	return employers, nil
}

// CreateBooth stores an active booth. An empty size defaults to medium.
func (s *FairService) CreateBooth(ctx context.Context, booth domain.Booth) (domain.Booth, error) {
	if booth.Size == "" {
		booth.Size = domain.BoothMedium
	}
	if !booth.Size.IsValid() {
		return domain.Booth{}, ErrInvalidBoothSize
	}
	booth.IsActive = true

	created, err := s.repo.CreateBooth(ctx, booth)
	if err != nil {
		return domain.Booth{}, fmt.Errorf("s.repo.CreateBooth -> %w", err)
	}

	s.invalidateStats(ctx)

	return created, nil
}

func (s *FairService) GetBooth(ctx context.Context, id uint) (domain.Booth, error) {
	booth, err := s.repo.GetBoothByID(ctx, id)
	if err != nil {
		return domain.Booth{}, fmt.Errorf("s.repo.GetBoothByID -> %w", err)
	}

	return booth, nil
}

func (s *FairService) SetBoothActive(ctx context.Context, id uint, active bool) (domain.Booth, error) {
	booth, err := s.repo.SetBoothActive(ctx, id, active)
	if err != nil {
		return domain.Booth{}, fmt.Errorf("s.repo.SetBoothActive -> %w", err)
	}

	s.invalidateStats(ctx)

	return booth, nil
}

// ListBooths returns every booth of an event, active or not.
func (s *FairService) ListBooths(ctx context.Context, eventID uint) ([]domain.Booth, error) {
	if _, err := s.repo.GetEventByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.GetEventByID -> %w", err)
	}

	booths, err := s.repo.ListBooths(ctx, eventID, 0, false)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListBooths -> %w", err)
	}

	return booths, nil
}

func (s *FairService) CreateInterviewSlot(ctx context.Context, boothID uint, start, end time.Time) (domain.InterviewSlot, error) {
	if !end.After(start) {
		return domain.InterviewSlot{}, ErrInvalidSlotRange
	}

	created, err := s.repo.CreateInterviewSlot(ctx, domain.InterviewSlot{
		BoothID:   boothID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	})
	if err != nil {
		return domain.InterviewSlot{}, fmt.Errorf("s.repo.CreateInterviewSlot -> %w", err)
	}

	return created, nil
}

func (s *FairService) ListInterviewSlots(ctx context.Context, boothID uint, onlyFree bool) ([]domain.InterviewSlot, error) {
	if _, err := s.repo.GetBoothByID(ctx, boothID); err != nil {
		return nil, fmt.Errorf("s.repo.GetBoothByID -> %w", err)
	}

	slots, err := s.repo.ListInterviewSlots(ctx, boothID, onlyFree)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListInterviewSlots -> %w", err)
	}

	return slots, nil
}

func (s *FairService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("failed to invalidate assignment statistics", zap.Error(err))
	}
}
