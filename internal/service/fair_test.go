package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerfair/jobfair-api/internal/cache"
	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/repository"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
	"github.com/careerfair/jobfair-api/internal/service"
	"github.com/careerfair/jobfair-api/internal/testutil"
)

func TestFairService(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewFairService(repository.NewFairRepository(dao.NewFairDAO(db)), cache.Noop{})
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, domain.Event{Name: "Spring Fair", Venue: "Hall A", StartsAt: testutil.FairStart, EndsAt: testutil.FairStart})
	assert.ErrorIs(t, err, service.ErrInvalidEventRange)

	event, err := svc.CreateEvent(ctx, domain.Event{Name: "Spring Fair", Venue: "Hall A", StartsAt: testutil.FairStart, EndsAt: testutil.FairStart.Add(8 * time.Hour)})
	require.NoError(t, err)
	employer, err := svc.CreateEmployer(ctx, domain.Employer{CompanyName: "Acme", Industry: "Software"})
	require.NoError(t, err)

	_, err = svc.CreateBooth(ctx, domain.Booth{Number: "A1", EventID: event.ID, EmployerID: employer.ID, Size: "huge"})
	assert.ErrorIs(t, err, service.ErrInvalidBoothSize)
	_, err = svc.CreateBooth(ctx, domain.Booth{Number: "A1", EventID: 999, EmployerID: employer.ID})
	assert.ErrorIs(t, err, service.ErrEventNotFound)

	booth, err := svc.CreateBooth(ctx, domain.Booth{Number: "A1", EventID: event.ID, EmployerID: employer.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.BoothMedium, booth.Size)
	assert.Equal(t, 20, booth.Capacity())
	assert.True(t, booth.IsActive)

	booth, err = svc.SetBoothActive(ctx, booth.ID, false)
	require.NoError(t, err)
	assert.False(t, booth.IsActive)

	booths, err := svc.ListBooths(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, booths, 1)
	_, err = svc.ListBooths(ctx, 999)
	assert.ErrorIs(t, err, service.ErrEventNotFound)

	start := testutil.FairStart
	_, err = svc.CreateInterviewSlot(ctx, booth.ID, start, start)
	assert.ErrorIs(t, err, service.ErrInvalidSlotRange)

	slot, err := svc.CreateInterviewSlot(ctx, booth.ID, start, start.Add(30*time.Minute))
	require.NoError(t, err)
	assert.False(t, slot.IsBooked)

	_, err = svc.CreateInterviewSlot(ctx, booth.ID, start.Add(10*time.Minute), start.Add(20*time.Minute))
	assert.ErrorIs(t, err, service.ErrSlotOverlap)

	_, err = svc.CreateInterviewSlot(ctx, booth.ID, start.Add(30*time.Minute), start.Add(time.Hour))
	require.NoError(t, err)

	slots, err := svc.ListInterviewSlots(ctx, booth.ID, true)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
	_, err = svc.ListInterviewSlots(ctx, 999, false)
	assert.ErrorIs(t, err, service.ErrBoothNotFound)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	employers, err := svc.ListEmployers(ctx)
	require.NoError(t, err)
	assert.Len(t, employers, 1)
}
