package repository

import (
	"context"
	"fmt"

	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
)

var (
	ErrEventNotFound    = dao.ErrEventNotFound
	ErrEmployerNotFound = dao.ErrEmployerNotFound
	ErrBoothNotFound    = dao.ErrBoothNotFound
	ErrSlotOverlap      = dao.ErrSlotOverlap
)

type FairDAO interface {
	InsertEvent(ctx context.Context, event dao.Event) (dao.Event, error)
	FindEventByID(ctx context.Context, id uint) (dao.Event, error)
	ListEvents(ctx context.Context) ([]dao.Event, error)
	InsertEmployer(ctx context.Context, employer dao.Employer) (dao.Employer, error)
	FindEmployerByID(ctx context.Context, id uint) (dao.Employer, error)
	ListEmployers(ctx context.Context) ([]dao.Employer, error)
	InsertBooth(ctx context.Context, booth dao.Booth) (dao.Booth, error)
	FindBoothByID(ctx context.Context, id uint) (dao.Booth, error)
	ListBooths(ctx context.Context, filter dao.BoothFilter) ([]dao.Booth, error)
	SetBoothActive(ctx context.Context, id uint, active bool) (dao.Booth, error)
	InsertInterviewSlot(ctx context.Context, slot dao.InterviewSlot) (dao.InterviewSlot, error)
	ListInterviewSlots(ctx context.Context, boothID uint, onlyFree bool) ([]dao.InterviewSlot, error)
}

type FairRepository struct {
	dao FairDAO
}

func NewFairRepository(dao FairDAO) *FairRepository {
	return &FairRepository{
		dao: dao,
	}
}

func (r *FairRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.InsertEvent(ctx, dao.Event{
		Name:     event.Name,
		Venue:    event.Venue,
		StartsAt: event.StartsAt,
		EndsAt:   event.EndsAt,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.InsertEvent -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *FairRepository) GetEventByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindEventByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

func (r *FairRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListEvents -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = eventDaoToDomain(e)
	}
	return events, nil
}

func (r *FairRepository) CreateEmployer(ctx context.Context, employer domain.Employer) (domain.Employer, error) {
	created, err := r.dao.InsertEmployer(ctx, dao.Employer{
		CompanyName:  employer.CompanyName,
		Industry:     employer.Industry,
		ContactEmail: employer.ContactEmail,
	})
	if err != nil {
		return domain.Employer{}, fmt.Errorf("r.dao.InsertEmployer -> %w", err)
	}

	return employerDaoToDomain(created), nil
}

func (r *FairRepository) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	found, err := r.dao.ListEmployers(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListEmployers -> %w", err)
	}

	employers := make([]domain.Employer, len(found))
	for i, e := range found {
		employers[i] = employerDaoToDomain(e)
	}
	return employers, nil
}

func (r *FairRepository) CreateBooth(ctx context.Context, booth domain.Booth) (domain.Booth, error) {
	created, err := r.dao.InsertBooth(ctx, dao.Booth{
		Number:     booth.Number,
		EventID:    booth.EventID,
		EmployerID: booth.EmployerID,
		Size:       string(booth.Size),
		IsActive:   booth.IsActive,
	})
	if err != nil {
		return domain.Booth{}, fmt.Errorf("r.dao.InsertBooth -> %w", err)
	}

	return boothDaoToDomain(created), nil
}

func (r *FairRepository) GetBoothByID(ctx context.Context, id uint) (domain.Booth, error) {
	found, err := r.dao.FindBoothByID(ctx, id)
	if err != nil {
		return domain.Booth{}, fmt.Errorf("r.dao.FindBoothByID -> %w", err)
	}

	return boothDaoToDomain(found), nil
}

func (r *FairRepository) ListBooths(ctx context.Context, eventID, employerID uint, onlyActive bool) ([]domain.Booth, error) {
	found, err := r.dao.ListBooths(ctx, dao.BoothFilter{
		EventID:    eventID,
		EmployerID: employerID,
		OnlyActive: onlyActive,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListBooths -> %w", err)
	}

	booths := make([]domain.Booth, len(found))
	for i, b := range found {
		booths[i] = boothDaoToDomain(b)
	}
	return booths, nil
}

func (r *FairRepository) SetBoothActive(ctx context.Context, id uint, active bool) (domain.Booth, error) {
	updated, err := r.dao.SetBoothActive(ctx, id, active)
	if err != nil {
		return domain.Booth{}, fmt.Errorf("r.dao.SetBoothActive -> %w", err)
	}

	return boothDaoToDomain(updated), nil
}

func (r *FairRepository) CreateInterviewSlot(ctx context.Context, slot domain.InterviewSlot) (domain.InterviewSlot, error) {
	created, err := r.dao.InsertInterviewSlot(ctx, dao.InterviewSlot{
		BoothID:   slot.BoothID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	})
	if err != nil {
		return domain.InterviewSlot{}, fmt.Errorf("r.dao.InsertInterviewSlot -> %w", err)
	}

	return slotDaoToDomain(created), nil
}

func (r *FairRepository) ListInterviewSlots(ctx context.Context, boothID uint, onlyFree bool) ([]domain.InterviewSlot, error) {
	found, err := r.dao.ListInterviewSlots(ctx, boothID, onlyFree)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListInterviewSlots -> %w", err)
	}

	slots := make([]domain.InterviewSlot, len(found))
	for i, s := range found {
		slots[i] = slotDaoToDomain(s)
	}
	return slots, nil
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:        e.ID,
		Name:      e.Name,
		Venue:     e.Venue,
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func employerDaoToDomain(e dao.Employer) domain.Employer {
	return domain.Employer{
		ID:           e.ID,
		CompanyName:  e.CompanyName,
		Industry:     e.Industry,
		ContactEmail: e.ContactEmail,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func boothDaoToDomain(b dao.Booth) domain.Booth {
	booth := domain.Booth{
		ID:         b.ID,
		Number:     b.Number,
		EventID:    b.EventID,
		EmployerID: b.EmployerID,
		Size:       domain.BoothSize(b.Size),
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	if b.Employer != nil {
		employer := employerDaoToDomain(*b.Employer)
		booth.Employer = &employer
	}

	return booth
}

func slotDaoToDomain(s dao.InterviewSlot) domain.InterviewSlot {
	return domain.InterviewSlot{
		ID:        s.ID,
		BoothID:   s.BoothID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		IsBooked:  s.IsBooked,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
