package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerfair/jobfair-api/internal/repository/dao"
	"github.com/careerfair/jobfair-api/internal/testutil"
)

func TestFairDAO_Booths(t *testing.T) {
	db := testutil.NewTestDB(t)
	d := dao.NewFairDAO(db)
	ctx := context.Background()

	event, err := d.InsertEvent(ctx, dao.Event{Name: "Spring Fair", Venue: "Hall A", StartsAt: testutil.FairStart, EndsAt: testutil.FairStart.Add(8 * time.Hour)})
	require.NoError(t, err)
	employer, err := d.InsertEmployer(ctx, dao.Employer{CompanyName: "Acme"})
	require.NoError(t, err)

	_, err = d.InsertBooth(ctx, dao.Booth{Number: "A1", EventID: 999, EmployerID: employer.ID})
	assert.ErrorIs(t, err, dao.ErrEventNotFound)
	_, err = d.InsertBooth(ctx, dao.Booth{Number: "A1", EventID: event.ID, EmployerID: 999})
	assert.ErrorIs(t, err, dao.ErrEmployerNotFound)

	a2, err := d.InsertBooth(ctx, dao.Booth{Number: "A2", EventID: event.ID, EmployerID: employer.ID, Size: "large", IsActive: true})
	require.NoError(t, err)
	a1, err := d.InsertBooth(ctx, dao.Booth{Number: "A1", EventID: event.ID, EmployerID: employer.ID, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "medium", a1.Size)

	found, err := d.FindBoothByID(ctx, a2.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Employer)
	assert.Equal(t, "Acme", found.Employer.CompanyName)

	_, err = d.FindBoothByID(ctx, 999)
	assert.ErrorIs(t, err, dao.ErrBoothNotFound)

	deactivated, err := d.SetBoothActive(ctx, a2.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	booths, err := d.ListBooths(ctx, dao.BoothFilter{EventID: event.ID})
	require.NoError(t, err)
	require.Len(t, booths, 2)
	assert.Equal(t, "A1", booths[0].Number)

	booths, err = d.ListBooths(ctx, dao.BoothFilter{EventID: event.ID, OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, booths, 1)
	assert.Equal(t, a1.ID, booths[0].ID)

	booths, err = d.ListBooths(ctx, dao.BoothFilter{EmployerID: 999})
	require.NoError(t, err)
	assert.Empty(t, booths)

	_, err = d.SetBoothActive(ctx, 999, true)
	assert.ErrorIs(t, err, dao.ErrBoothNotFound)
}

func TestFairDAO_InterviewSlots(t *testing.T) {
	db := testutil.NewTestDB(t)
	d := dao.NewFairDAO(db)
	ctx := context.Background()

	event := testutil.SeedEvent(t, db, "Spring Fair")
	employer := testutil.SeedEmployer(t, db, "Acme")
	booth := testutil.SeedBooth(t, db, event.ID, employer.ID, "A1", "small")

	slot := func(from, to time.Duration) dao.InterviewSlot {
		return dao.InterviewSlot{BoothID: booth.ID, StartTime: testutil.FairStart.Add(from), EndTime: testutil.FairStart.Add(to)}
	}

	second, err := d.InsertInterviewSlot(ctx, slot(30*time.Minute, time.Hour))
	require.NoError(t, err)
	first, err := d.InsertInterviewSlot(ctx, slot(0, 30*time.Minute))
	require.NoError(t, err)

	_, err = d.InsertInterviewSlot(ctx, slot(15*time.Minute, 45*time.Minute))
	assert.ErrorIs(t, err, dao.ErrSlotOverlap)

	missing := slot(0, time.Hour)
	missing.BoothID = 999
	_, err = d.InsertInterviewSlot(ctx, missing)
	assert.ErrorIs(t, err, dao.ErrBoothNotFound)

	require.NoError(t, db.Model(&dao.InterviewSlot{}).Where("id = ?", second.ID).Update("is_booked", true).Error)

	slots, err := d.ListInterviewSlots(ctx, booth.ID, false)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, first.ID, slots[0].ID)

	free, err := d.ListInterviewSlots(ctx, booth.ID, true)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, first.ID, free[0].ID)
}

func TestFairDAO_EventsAndEmployers(t *testing.T) {
	db := testutil.NewTestDB(t)
	d := dao.NewFairDAO(db)
	ctx := context.Background()

	later, err := d.InsertEvent(ctx, dao.Event{Name: "Autumn Fair", Venue: "Hall B", StartsAt: testutil.FairStart.Add(180 * 24 * time.Hour), EndsAt: testutil.FairStart.Add(180*24*time.Hour + time.Hour)})
	require.NoError(t, err)
	earlier, err := d.InsertEvent(ctx, dao.Event{Name: "Spring Fair", Venue: "Hall A", StartsAt: testutil.FairStart, EndsAt: testutil.FairStart.Add(time.Hour)})
	require.NoError(t, err)

	events, err := d.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, earlier.ID, events[0].ID)
	assert.Equal(t, later.ID, events[1].ID)

	found, err := d.FindEventByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, "Autumn Fair", found.Name)
	_, err = d.FindEventByID(ctx, 999)
	assert.ErrorIs(t, err, dao.ErrEventNotFound)

	_, err = d.InsertEmployer(ctx, dao.Employer{CompanyName: "Zeta"})
	require.NoError(t, err)
	acme, err := d.InsertEmployer(ctx, dao.Employer{CompanyName: "Acme"})
	require.NoError(t, err)

	employers, err := d.ListEmployers(ctx)
	require.NoError(t, err)
	require.Len(t, employers, 2)
	assert.Equal(t, acme.ID, employers[0].ID)

	_, err = d.FindEmployerByID(ctx, 999)
	assert.ErrorIs(t, err, dao.ErrEmployerNotFound)
}
