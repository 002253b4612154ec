package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerfair/jobfair-api/internal/cache"
	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/repository"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
	"github.com/careerfair/jobfair-api/internal/service"
	"github.com/careerfair/jobfair-api/internal/testutil"
)

func TestJobSeekerService(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewJobSeekerService(repository.NewJobSeekerRepository(dao.NewJobSeekerDAO(db)), cache.Noop{})
	ctx := context.Background()
	event := testutil.SeedEvent(t, db, "Spring Fair")

	_, err := svc.RegisterJobSeeker(ctx, domain.JobSeeker{EventID: event.ID, FullName: "Ann", Email: "ann@example.com", PriorityLevel: "urgent"})
	assert.ErrorIs(t, err, service.ErrInvalidPriority)
	_, err = svc.RegisterJobSeeker(ctx, domain.JobSeeker{EventID: 999, FullName: "Ann", Email: "ann@example.com"})
	assert.ErrorIs(t, err, service.ErrEventNotFound)

	ann, err := svc.RegisterJobSeeker(ctx, domain.JobSeeker{
		EventID:            event.ID,
		FullName:           "Ann",
		Email:              "ann@example.com",
		RegistrationStatus: domain.RegistrationApproved,
		AssignmentStatus:   domain.SeekerAssigned,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPending, ann.RegistrationStatus)
	assert.Equal(t, domain.SeekerUnassigned, ann.AssignmentStatus)
	assert.Equal(t, domain.PriorityMedium, ann.PriorityLevel)

	rejected, err := svc.ReviewRegistration(ctx, ann.ID, domain.RegistrationRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationRejected, rejected.RegistrationStatus)

	_, err = svc.ReviewRegistration(ctx, ann.ID, domain.RegistrationPending)
	assert.ErrorIs(t, err, service.ErrInvalidRegistrationTransition)

	approved, err := svc.ReviewRegistration(ctx, ann.ID, domain.RegistrationApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationApproved, approved.RegistrationStatus)

	_, err = svc.ReviewRegistration(ctx, ann.ID, domain.RegistrationRejected)
	assert.ErrorIs(t, err, service.ErrInvalidRegistrationTransition)
	_, err = svc.ReviewRegistration(ctx, 999, domain.RegistrationApproved)
	assert.ErrorIs(t, err, service.ErrJobSeekerNotFound)

	found, err := svc.GetJobSeeker(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationApproved, found.RegistrationStatus)

	seekers, err := svc.ListJobSeekers(ctx, repository.JobSeekerQuery{RegistrationStatus: domain.RegistrationApproved})
	require.NoError(t, err)
	assert.Len(t, seekers, 1)
}
