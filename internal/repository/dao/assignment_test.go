package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/careerfair/jobfair-api/internal/repository/dao"
	"github.com/careerfair/jobfair-api/internal/testutil"
)

type assignmentFixture struct {
	db     *gorm.DB
	dao    *dao.AssignmentDAO
	event  dao.Event
	booth  dao.Booth
	seeker dao.JobSeeker
	slot   dao.InterviewSlot
}

func setupAssignmentFixture(t *testing.T) assignmentFixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	event := testutil.SeedEvent(t, db, "Spring Fair")
	employer := testutil.SeedEmployer(t, db, "Acme")
	booth := testutil.SeedBooth(t, db, event.ID, employer.ID, "A1", "small")

	return assignmentFixture{
		db:     db,
		dao:    dao.NewAssignmentDAO(db),
		event:  event,
		booth:  booth,
		seeker: testutil.SeedJobSeeker(t, db, event.ID, "ann", "approved", "high"),
		slot:   testutil.SeedSlot(t, db, booth.ID, 0),
	}
}

func (f assignmentFixture) newAssignment(slotID *uint) dao.BoothAssignment {
	return dao.BoothAssignment{
		JobSeekerID: f.seeker.ID,
		BoothID:     f.booth.ID,
		SlotID:      slotID,
		Status:      "assigned",
		Priority:    "high",
		AssignedBy:  1,
		AssignedAt:  testutil.FairStart,
	}
}

func (f assignmentFixture) reloadSeeker(t *testing.T) dao.JobSeeker {
	var seeker dao.JobSeeker
	require.NoError(t, f.db.First(&seeker, f.seeker.ID).Error)
	return seeker
}

func (f assignmentFixture) reloadSlot(t *testing.T) dao.InterviewSlot {
	var slot dao.InterviewSlot
	require.NoError(t, f.db.First(&slot, f.slot.ID).Error)
	return slot
}

func TestAssignmentDAO_Assign(t *testing.T) {
	f := setupAssignmentFixture(t)
	ctx := context.Background()

	created, err := f.dao.Assign(ctx, f.newAssignment(&f.slot.ID))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "assigned", created.Status)

	assert.Equal(t, "assigned", f.reloadSeeker(t).AssignmentStatus)
	assert.True(t, f.reloadSlot(t).IsBooked)
}

func TestAssignmentDAO_Assign_Rejections(t *testing.T) {
	t.Run("seeker not found", func(t *testing.T) {
		f := setupAssignmentFixture(t)
		a := f.newAssignment(nil)
		a.JobSeekerID = 999

		_, err := f.dao.Assign(context.Background(), a)
		assert.ErrorIs(t, err, dao.ErrJobSeekerNotFound)
	})

	t.Run("seeker pending", func(t *testing.T) {
		f := setupAssignmentFixture(t)
		pending := testutil.SeedJobSeeker(t, f.db, f.event.ID, "bob", "pending", "low")
		a := f.newAssignment(nil)
		a.JobSeekerID = pending.ID

		_, err := f.dao.Assign(context.Background(), a)
		assert.ErrorIs(t, err, dao.ErrJobSeekerNotReady)
	})

	t.Run("booth not found", func(t *testing.T) {
		f := setupAssignmentFixture(t)
		a := f.newAssignment(nil)
		a.BoothID = 999

		_, err := f.dao.Assign(context.Background(), a)
		assert.ErrorIs(t, err, dao.ErrBoothNotFound)
	})

	t.Run("booth inactive", func(t *testing.T) {
		f := setupAssignmentFixture(t)
		require.NoError(t, f.db.Model(&f.booth).Update("is_active", false).Error)

		_, err := f.dao.Assign(context.Background(), f.newAssignment(nil))
		assert.ErrorIs(t, err, dao.ErrBoothInactive)
	})

	t.Run("slot not found", func(t *testing.T) {
		f := setupAssignmentFixture(t)
		missing := uint(999)

		_, err := f.dao.Assign(context.Background(), f.newAssignment(&missing))
		assert.ErrorIs(t, err, dao.ErrSlotNotFound)
	})

	t.Run("slot of another booth", func(t *testing.T) {
		f := setupAssignmentFixture(t)
		employer := testutil.SeedEmployer(t, f.db, "Globex")
		other := testutil.SeedBooth(t, f.db, f.event.ID, employer.ID, "B1", "large")
		foreign := testutil.SeedSlot(t, f.db, other.ID, 0)

		_, err := f.dao.Assign(context.Background(), f.newAssignment(&foreign.ID))
		assert.ErrorIs(t, err, dao.ErrSlotNotInBooth)
	})

	t.Run("slot already booked", func(t *testing.T) {
		f := setupAssignmentFixture(t)
		require.NoError(t, f.db.Model(&f.slot).Update("is_booked", true).Error)

		_, err := f.dao.Assign(context.Background(), f.newAssignment(&f.slot.ID))
		assert.ErrorIs(t, err, dao.ErrSlotUnavailable)
	})
}

func TestAssignmentDAO_Assign_Duplicate(t *testing.T) {
	f := setupAssignmentFixture(t)
	ctx := context.Background()

	first, err := f.dao.Assign(ctx, f.newAssignment(nil))
	require.NoError(t, err)

	_, err = f.dao.Assign(ctx, f.newAssignment(nil))
	assert.ErrorIs(t, err, dao.ErrAlreadyAssigned)

	// Once the first one is no longer active the pair may be assigned again.
	_, err = f.dao.UpdateStatus(ctx, first.ID, dao.StatusChange{Status: "cancelled", SeekerStatus: "unassigned", ReleaseSlot: true})
	require.NoError(t, err)

	_, err = f.dao.Assign(ctx, f.newAssignment(nil))
	assert.NoError(t, err)
}

func TestAssignmentDAO_ActiveIndex(t *testing.T) {
	f := setupAssignmentFixture(t)

	insert := func(status string) error {
		a := f.newAssignment(nil)
		a.Status = status
		return f.db.Omit("JobSeeker", "Booth", "Slot").Create(&a).Error
	}

	require.NoError(t, insert("completed"))
	require.NoError(t, insert("assigned"))
	assert.Error(t, insert("confirmed"))
}

func TestAssignmentDAO_UpdateStatus(t *testing.T) {
	f := setupAssignmentFixture(t)
	ctx := context.Background()

	created, err := f.dao.Assign(ctx, f.newAssignment(&f.slot.ID))
	require.NoError(t, err)

	updated, err := f.dao.UpdateStatus(ctx, created.ID, dao.StatusChange{Status: "confirmed", SeekerStatus: "confirmed", Notes: "called ahead"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
	assert.Equal(t, "called ahead", updated.Notes)
	require.NotNil(t, updated.SlotID)
	assert.Equal(t, "confirmed", f.reloadSeeker(t).AssignmentStatus)
	assert.True(t, f.reloadSlot(t).IsBooked)

	cancelled, err := f.dao.UpdateStatus(ctx, created.ID, dao.StatusChange{Status: "cancelled", SeekerStatus: "unassigned", ReleaseSlot: true})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, "called ahead", cancelled.Notes)
	assert.Nil(t, cancelled.SlotID)
	assert.Equal(t, "unassigned", f.reloadSeeker(t).AssignmentStatus)
	assert.False(t, f.reloadSlot(t).IsBooked)

	_, err = f.dao.UpdateStatus(ctx, 999, dao.StatusChange{Status: "confirmed", SeekerStatus: "confirmed"})
	assert.ErrorIs(t, err, dao.ErrAssignmentNotFound)
}

func TestAssignmentDAO_UpdateStatus_ReviveOnInactiveBooth(t *testing.T) {
	f := setupAssignmentFixture(t)
	ctx := context.Background()

	created, err := f.dao.Assign(ctx, f.newAssignment(nil))
	require.NoError(t, err)
	_, err = f.dao.UpdateStatus(ctx, created.ID, dao.StatusChange{Status: "cancelled", SeekerStatus: "unassigned"})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&dao.Booth{}).Where("id = ?", f.booth.ID).Update("is_active", false).Error)

	_, err = f.dao.UpdateStatus(ctx, created.ID, dao.StatusChange{Status: "confirmed", SeekerStatus: "confirmed"})
	assert.ErrorIs(t, err, dao.ErrBoothInactive)

	var stored dao.BoothAssignment
	require.NoError(t, f.db.First(&stored, created.ID).Error)
	assert.Equal(t, "cancelled", stored.Status)
	assert.Equal(t, "unassigned", f.reloadSeeker(t).AssignmentStatus)

	completed, err := f.dao.UpdateStatus(ctx, created.ID, dao.StatusChange{Status: "completed", SeekerStatus: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)

	require.NoError(t, f.db.Model(&dao.Booth{}).Where("id = ?", f.booth.ID).Update("is_active", true).Error)

	revived, err := f.dao.UpdateStatus(ctx, created.ID, dao.StatusChange{Status: "assigned", SeekerStatus: "assigned"})
	require.NoError(t, err)
	assert.Equal(t, "assigned", revived.Status)
}

func TestAssignmentDAO_Delete(t *testing.T) {
	f := setupAssignmentFixture(t)
	ctx := context.Background()

	created, err := f.dao.Assign(ctx, f.newAssignment(&f.slot.ID))
	require.NoError(t, err)

	deleted, err := f.dao.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = f.dao.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, dao.ErrAssignmentNotFound)
	assert.Equal(t, "unassigned", f.reloadSeeker(t).AssignmentStatus)
	assert.False(t, f.reloadSlot(t).IsBooked)

	_, err = f.dao.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, dao.ErrAssignmentNotFound)
}

func TestAssignmentDAO_ListAndCounts(t *testing.T) {
	f := setupAssignmentFixture(t)
	ctx := context.Background()

	bob := testutil.SeedJobSeeker(t, f.db, f.event.ID, "bob", "approved", "low")
	testutil.SeedJobSeeker(t, f.db, f.event.ID, "cai", "pending", "medium")

	first, err := f.dao.Assign(ctx, f.newAssignment(&f.slot.ID))
	require.NoError(t, err)
	assert.NotNil(t, first.SlotID)

	second := f.newAssignment(nil)
	second.JobSeekerID = bob.ID
	second.AssignedAt = testutil.FairStart.Add(time.Minute)
	second, err = f.dao.Assign(ctx, second)
	require.NoError(t, err)
	_, err = f.dao.UpdateStatus(ctx, second.ID, dao.StatusChange{Status: "completed", SeekerStatus: "completed"})
	require.NoError(t, err)

	all, err := f.dao.List(ctx, dao.AssignmentFilter{BoothID: f.booth.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	require.NotNil(t, all[0].JobSeeker)
	assert.Equal(t, "ann", all[0].JobSeeker.FullName)
	require.NotNil(t, all[0].Slot)
	assert.Equal(t, f.slot.ID, all[0].Slot.ID)

	completed, err := f.dao.List(ctx, dao.AssignmentFilter{BoothID: f.booth.ID, Status: "completed"})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, second.ID, completed[0].ID)

	loads, err := f.dao.ActiveLoadByBooth(ctx, []uint{f.booth.ID})
	require.NoError(t, err)
	assert.Equal(t, []dao.BoothLoad{{BoothID: f.booth.ID, Count: 1}}, loads)

	loads, err = f.dao.ActiveLoadByBooth(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, loads)

	byStatus, err := f.dao.CountByStatus(ctx, f.event.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []dao.StatusCount{{Status: "assigned", Count: 1}, {Status: "completed", Count: 1}}, byStatus)

	byStatus, err = f.dao.CountByStatus(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, byStatus)

	seekers, err := f.dao.CountSeekers(ctx, f.event.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []dao.SeekerCount{
		{RegistrationStatus: "approved", AssignmentStatus: "assigned", Count: 1},
		{RegistrationStatus: "approved", AssignmentStatus: "completed", Count: 1},
		{RegistrationStatus: "pending", AssignmentStatus: "unassigned", Count: 1},
	}, seekers)
}
