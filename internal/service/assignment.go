package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/metrics"
	"github.com/careerfair/jobfair-api/internal/repository"
)

var (
	ErrJobSeekerNotApproved = repository.ErrJobSeekerNotApproved
	ErrBoothInactive        = repository.ErrBoothInactive
	ErrAlreadyAssigned      = repository.ErrAlreadyAssigned
	ErrAssignmentNotFound   = repository.ErrAssignmentNotFound
	ErrSlotNotFound         = repository.ErrSlotNotFound
	ErrSlotNotInBooth       = repository.ErrSlotNotInBooth
	ErrSlotUnavailable      = repository.ErrSlotUnavailable
	ErrInvalidStatus        = errors.New("invalid assignment status")
	ErrInvalidPriority      = errors.New("invalid priority")
)

const (
	DefaultBulkBatchSize  = 10
	DefaultBulkBatchPause = 100 * time.Millisecond
)

type AssignmentRepository interface {
	Assign(ctx context.Context, assignment domain.BoothAssignment) (domain.BoothAssignment, error)
	UpdateStatus(ctx context.Context, id uint, status domain.AssignmentStatus, notes string) (domain.BoothAssignment, error)
	Delete(ctx context.Context, id uint) (domain.BoothAssignment, error)
	FindByID(ctx context.Context, id uint) (domain.BoothAssignment, error)
	ListByBooth(ctx context.Context, boothID uint, status domain.AssignmentStatus) ([]domain.BoothAssignment, error)
	ActiveLoad(ctx context.Context, boothIDs []uint) (map[uint]int, error)
	CountByStatus(ctx context.Context, eventID uint) (map[domain.AssignmentStatus]int, error)
	CountSeekers(ctx context.Context, eventID uint) (repository.SeekerCounts, error)
}

type SeekerLister interface {
	List(ctx context.Context, query repository.JobSeekerQuery) ([]domain.JobSeeker, error)
}

type BoothLister interface {
	GetBoothByID(ctx context.Context, id uint) (domain.Booth, error)
	ListBooths(ctx context.Context, eventID, employerID uint, onlyActive bool) ([]domain.Booth, error)
}

// StatsCache stores statistics under a version. Invalidate moves to a new version, so
// entries computed before it are never served again.
type StatsCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, eventID uint) (*domain.AssignmentStatistics, bool, error)
	Set(ctx context.Context, version int64, eventID uint, stats *domain.AssignmentStatistics) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.AssignmentEvent) error
}

type AssignInput struct {
	JobSeekerID uint            `json:"job_seeker_id"`
	BoothID     uint            `json:"booth_id"`
	SlotID      *uint           `json:"slot_id,omitempty"`
	Notes       string          `json:"notes"`
	Priority    domain.Priority `json:"priority"`
}

type BulkItemResult struct {
	Index        int    `json:"index"`
	JobSeekerID  uint   `json:"job_seeker_id"`
	BoothID      uint   `json:"booth_id"`
	Success      bool   `json:"success"`
	AssignmentID uint   `json:"assignment_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

type BulkAssignSummary struct {
	BatchID    string           `json:"batch_id"`
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Results    []BulkItemResult `json:"results"`
}

type BulkOptions struct {
	BatchSize  int
	BatchPause time.Duration
}

type JobSeekerFilter struct {
	EventID  uint
	Priority domain.Priority
	Search   string
}

type BoothFilter struct {
	EventID    uint
	EmployerID uint
	Search     string
}

type AssignmentFilter struct {
	Status domain.AssignmentStatus
	Search string
}

type AssignmentService struct {
	repo      AssignmentRepository
	seekers   SeekerLister
	booths    BoothLister
	cache     StatsCache
	publisher EventPublisher

	mu   sync.RWMutex
	bulk BulkOptions

	now func() time.Time
}

func NewAssignmentService(
	repo AssignmentRepository,
	seekers SeekerLister,
	booths BoothLister,
	cache StatsCache,
	publisher EventPublisher,
	opts BulkOptions,
) *AssignmentService {
	s := &AssignmentService{
		repo:      repo,
		seekers:   seekers,
		booths:    booths,
		cache:     cache,
		publisher: publisher,
		now:       time.Now,
	}
	s.SetBulkOptions(opts)

	return s
}

// SetBulkOptions is safe to call while bulk assignments are running; a run in progress
// keeps the options it started with.
func (s *AssignmentService) SetBulkOptions(opts BulkOptions) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBulkBatchSize
	}
	if opts.BatchPause < 0 {
		opts.BatchPause = 0
	}

	s.mu.Lock()
	s.bulk = opts
	s.mu.Unlock()
}

func (s *AssignmentService) BulkOptions() BulkOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bulk
}

func (s *AssignmentService) AssignJobSeekerToBooth(ctx context.Context, adminID uint, input AssignInput) (domain.BoothAssignment, error) {
	switch {
	case input.JobSeekerID == 0:
		return domain.BoothAssignment{}, ErrJobSeekerNotFound
	case input.BoothID == 0:
		return domain.BoothAssignment{}, ErrBoothNotFound
	case input.SlotID != nil && *input.SlotID == 0:
		return domain.BoothAssignment{}, ErrSlotNotFound
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return domain.BoothAssignment{}, ErrInvalidPriority
	}

	created, err := s.repo.Assign(ctx, domain.BoothAssignment{
		JobSeekerID: input.JobSeekerID,
		BoothID:     input.BoothID,
		SlotID:      input.SlotID,
		Status:      domain.AssignmentAssigned,
		Priority:    priority,
		Notes:       input.Notes,
		AssignedBy:  adminID,
		AssignedAt:  s.now().UTC(),
	})
	if err != nil {
		return domain.BoothAssignment{}, fmt.Errorf("s.repo.Assign -> %w", err)
	}

	metrics.AssignmentsCreated.Inc()
	s.afterMutation(ctx, domain.EventAssignmentCreated, created)

	return created, nil
}

// BulkAssignJobSeekers assigns every input independently. A failing item never undoes the
// items before it. Items are processed in batches with a pause in between; once ctx is
// done no further batch is started and the remaining items are reported as failed.
func (s *AssignmentService) BulkAssignJobSeekers(ctx context.Context, adminID uint, inputs []AssignInput) BulkAssignSummary {
	timer := prometheus.NewTimer(metrics.BulkAssignDuration)
	defer timer.ObserveDuration()

	opts := s.BulkOptions()
	summary := BulkAssignSummary{
		BatchID: uuid.NewString(),
		Total:   len(inputs),
		Results: make([]BulkItemResult, 0, len(inputs)),
	}

	for start := 0; start < len(inputs); start += opts.BatchSize {
		if start > 0 {
			if err := pause(ctx, opts.BatchPause); err != nil {
				s.failRemaining(&summary, inputs, start, err)
				break
			}
		}
		if err := ctx.Err(); err != nil {
			s.failRemaining(&summary, inputs, start, err)
			break
		}

		end := min(start+opts.BatchSize, len(inputs))
		for i := start; i < end; i++ {
			result := BulkItemResult{
				Index:       i,
				JobSeekerID: inputs[i].JobSeekerID,
				BoothID:     inputs[i].BoothID,
			}

			created, err := s.AssignJobSeekerToBooth(ctx, adminID, inputs[i])
			if err != nil {
				result.Error = errorMessage(err)
				summary.Failed++
				metrics.BulkAssignResults.WithLabelValues("failure").Inc()
			} else {
				result.Success = true
				result.AssignmentID = created.ID
				summary.Successful++
				metrics.BulkAssignResults.WithLabelValues("success").Inc()
			}
			summary.Results = append(summary.Results, result)
		}
	}

	zap.L().Info("bulk assignment finished",
		zap.String("batch_id", summary.BatchID),
		zap.Int("total", summary.Total),
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed),
	)

	return summary
}

func (s *AssignmentService) failRemaining(summary *BulkAssignSummary, inputs []AssignInput, from int, cause error) {
	for i := from; i < len(inputs); i++ {
		summary.Results = append(summary.Results, BulkItemResult{
			Index:       i,
			JobSeekerID: inputs[i].JobSeekerID,
			BoothID:     inputs[i].BoothID,
			Error:       cause.Error(),
		})
		summary.Failed++
		metrics.BulkAssignResults.WithLabelValues("failure").Inc()
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// errorMessage strips the wrapping chain from known domain errors.
func errorMessage(err error) string {
	for _, sentinel := range []error{
		ErrJobSeekerNotFound, ErrJobSeekerNotApproved, ErrBoothNotFound, ErrBoothInactive,
		ErrAlreadyAssigned, ErrSlotNotFound, ErrSlotNotInBooth, ErrSlotUnavailable, ErrInvalidPriority,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return err.Error()
}

func (s *AssignmentService) UpdateAssignmentStatus(ctx context.Context, id uint, status domain.AssignmentStatus, notes string) (domain.BoothAssignment, error) {
	if !status.IsValid() {
		return domain.BoothAssignment{}, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, notes)
	if err != nil {
		return domain.BoothAssignment{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	metrics.AssignmentStatusChanges.WithLabelValues(string(status)).Inc()
	s.afterMutation(ctx, domain.EventAssignmentStatusChanged, updated)

	return updated, nil
}

func (s *AssignmentService) RemoveBoothAssignment(ctx context.Context, id uint) (domain.BoothAssignment, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.BoothAssignment{}, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	metrics.AssignmentsRemoved.Inc()
	s.afterMutation(ctx, domain.EventAssignmentRemoved, removed)

	return removed, nil
}

// afterMutation drops cached statistics and announces the change. Both are best effort.
func (s *AssignmentService) afterMutation(ctx context.Context, eventType domain.AssignmentEventType, a domain.BoothAssignment) {
	if err := s.cache.Invalidate(ctx); err != nil {
		zap.L().Warn("failed to invalidate assignment statistics", zap.Error(err))
	}

	event := domain.AssignmentEvent{
		Type:         eventType,
		AssignmentID: a.ID,
		JobSeekerID:  a.JobSeekerID,
		BoothID:      a.BoothID,
		SlotID:       a.SlotID,
		Status:       a.Status,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.EventPublishFailures.Inc()
		zap.L().Warn("failed to publish assignment event",
			zap.String("type", string(eventType)),
			zap.Uint("assignment_id", a.ID),
			zap.Error(err),
		)
	}
}

// GetUnassignedJobSeekers lists approved job seekers without an assignment, high priority
// first and then in registration order.
func (s *AssignmentService) GetUnassignedJobSeekers(ctx context.Context, filter JobSeekerFilter) ([]domain.JobSeeker, error) {
	if filter.Priority != "" && !filter.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	seekers, err := s.seekers.List(ctx, repository.JobSeekerQuery{
		EventID:            filter.EventID,
		RegistrationStatus: domain.RegistrationApproved,
		AssignmentStatus:   domain.SeekerUnassigned,
		PriorityLevel:      filter.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("s.seekers.List -> %w", err)
	}

	matched := make([]domain.JobSeeker, 0, len(seekers))
	for _, js := range seekers {
		if matchesSearch(filter.Search, js.FullName, js.Email, js.Phone) {
			matched = append(matched, js)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PriorityLevel.Rank() < matched[j].PriorityLevel.Rank()
	})

	return matched, nil
}

// GetAvailableBooths lists active booths that can still take job seekers.
func (s *AssignmentService) GetAvailableBooths(ctx context.Context, filter BoothFilter) ([]domain.AvailableBooth, error) {
	booths, err := s.booths.ListBooths(ctx, filter.EventID, filter.EmployerID, true)
	if err != nil {
		return nil, fmt.Errorf("s.booths.ListBooths -> %w", err)
	}

	matched := make([]domain.Booth, 0, len(booths))
	ids := make([]uint, 0, len(booths))
	for _, b := range booths {
		company := ""
		if b.Employer != nil {
			company = b.Employer.CompanyName
		}
		if matchesSearch(filter.Search, b.Number, company) {
			matched = append(matched, b)
			ids = append(ids, b.ID)
		}
	}

	loads, err := s.repo.ActiveLoad(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ActiveLoad -> %w", err)
	}

	available := make([]domain.AvailableBooth, 0, len(matched))
	for _, b := range matched {
		capacity := b.Capacity()
		remaining := capacity - loads[b.ID]
		if remaining <= 0 {
			continue
		}

		available = append(available, domain.AvailableBooth{
			Booth:             b,
			Capacity:          capacity,
			ActiveAssignments: loads[b.ID],
			RemainingCapacity: remaining,
		})
	}

	return available, nil
}

// GetAssignmentStatistics summarises the assignments of one event, or of every event when
// eventID is 0.
func (s *AssignmentService) GetAssignmentStatistics(ctx context.Context, eventID uint) (domain.AssignmentStatistics, error) {
	version, err := s.cache.Version(ctx)
	cacheable := err == nil
	if err != nil {
		zap.L().Warn("failed to read statistics cache version", zap.Error(err))
	}

	if cacheable {
		cached, ok, err := s.cache.Get(ctx, version, eventID)
		if err != nil {
			zap.L().Warn("failed to read cached assignment statistics", zap.Uint("event_id", eventID), zap.Error(err))
		}
		if ok {
			return *cached, nil
		}
	}

	byStatus, err := s.repo.CountByStatus(ctx, eventID)
	if err != nil {
		return domain.AssignmentStatistics{}, fmt.Errorf("s.repo.CountByStatus -> %w", err)
	}

	seekers, err := s.repo.CountSeekers(ctx, eventID)
	if err != nil {
		return domain.AssignmentStatistics{}, fmt.Errorf("s.repo.CountSeekers -> %w", err)
	}

	booths, err := s.booths.ListBooths(ctx, eventID, 0, true)
	if err != nil {
		return domain.AssignmentStatistics{}, fmt.Errorf("s.booths.ListBooths -> %w", err)
	}

	stats := domain.AssignmentStatistics{
		EventID:            eventID,
		ByStatus:           byStatus,
		TotalJobSeekers:    seekers.Total,
		ApprovedJobSeekers: seekers.Approved,
		AssignedJobSeekers: seekers.Assigned,
		UnassignedSeekers:  seekers.Unassigned,
		ActiveBooths:       len(booths),
	}
	for _, count := range byStatus {
		stats.TotalAssignments += count
	}
	for _, b := range booths {
		stats.TotalCapacity += b.Capacity()
	}
	if stats.TotalCapacity > 0 {
		active := byStatus[domain.AssignmentAssigned] + byStatus[domain.AssignmentConfirmed]
		stats.UtilizationPercent = math.Round(float64(active)/float64(stats.TotalCapacity)*1000) / 10
	}

	if cacheable {
		if err = s.cache.Set(ctx, version, eventID, &stats); err != nil {
			zap.L().Warn("failed to cache assignment statistics", zap.Uint("event_id", eventID), zap.Error(err))
		}
	}

	return stats, nil
}

// GetBoothAssignments lists the assignments of a booth with their job seeker and slot.
func (s *AssignmentService) GetBoothAssignments(ctx context.Context, boothID uint, filter AssignmentFilter) ([]domain.BoothAssignment, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.booths.GetBoothByID(ctx, boothID); err != nil {
		return nil, fmt.Errorf("s.booths.GetBoothByID -> %w", err)
	}

	assignments, err := s.repo.ListByBooth(ctx, boothID, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByBooth -> %w", err)
	}

	matched := make([]domain.BoothAssignment, 0, len(assignments))
	for _, a := range assignments {
		name, email := "", ""
		if a.JobSeeker != nil {
			name, email = a.JobSeeker.FullName, a.JobSeeker.Email
		}
		if matchesSearch(filter.Search, name, email) {
			matched = append(matched, a)
		}
	}

	return matched, nil
}

// matchesSearch reports whether any field contains query, ignoring case. An empty query
// matches everything.
func matchesSearch(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}

	return false
}
