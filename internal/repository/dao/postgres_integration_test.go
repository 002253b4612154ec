//go:build integration

package dao_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/careerfair/jobfair-api/internal/db"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
	"github.com/careerfair/jobfair-api/internal/testutil"
)

// newPostgres starts a throwaway postgres container and returns a migrated connection.
func newPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=jobfair_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(300)

	url := fmt.Sprintf("postgres://postgres:secret@%s/jobfair_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	var gdb *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		gdb, openErr = db.OpenPostgresWithURL(url)
		if openErr != nil {
			return openErr
		}
		sqlDB, openErr := gdb.DB()
		if openErr != nil {
			return openErr
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))

	return gdb
}

func TestAssignmentDAO_Postgres_ConcurrentAssign(t *testing.T) {
	gdb := newPostgres(t)
	d := dao.NewAssignmentDAO(gdb)

	event := testutil.SeedEvent(t, gdb, "Spring Fair")
	employer := testutil.SeedEmployer(t, gdb, "Acme")
	booth := testutil.SeedBooth(t, gdb, event.ID, employer.ID, "A1", "small")
	seeker := testutil.SeedJobSeeker(t, gdb, event.ID, "ann", "approved", "high")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		others    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Assign(context.Background(), dao.BoothAssignment{
				JobSeekerID: seeker.ID,
				BoothID:     booth.ID,
				Status:      "assigned",
				Priority:    "high",
				AssignedBy:  1,
				AssignedAt:  testutil.FairStart,
			})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			others = append(others, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	for _, err := range others {
		assert.True(t, errors.Is(err, dao.ErrAlreadyAssigned), "unexpected error: %v", err)
	}
}

func TestAssignmentDAO_Postgres_ReassignAfterCancel(t *testing.T) {
	gdb := newPostgres(t)
	d := dao.NewAssignmentDAO(gdb)

	event := testutil.SeedEvent(t, gdb, "Spring Fair")
	employer := testutil.SeedEmployer(t, gdb, "Acme")
	booth := testutil.SeedBooth(t, gdb, event.ID, employer.ID, "A1", "small")
	seeker := testutil.SeedJobSeeker(t, gdb, event.ID, "ann", "approved", "high")
	slot := testutil.SeedSlot(t, gdb, booth.ID, 0)

	ctx := context.Background()
	first, err := d.Assign(ctx, dao.BoothAssignment{
		JobSeekerID: seeker.ID,
		BoothID:     booth.ID,
		SlotID:      &slot.ID,
		Status:      "assigned",
		Priority:    "high",
		AssignedBy:  1,
		AssignedAt:  testutil.FairStart,
	})
	require.NoError(t, err)

	cancelled, err := d.UpdateStatus(ctx, first.ID, dao.StatusChange{
		Status:       "cancelled",
		SeekerStatus: "unassigned",
		ReleaseSlot:  true,
	})
	require.NoError(t, err)
	assert.Nil(t, cancelled.SlotID)

	_, err = d.Assign(ctx, dao.BoothAssignment{
		JobSeekerID: seeker.ID,
		BoothID:     booth.ID,
		SlotID:      &slot.ID,
		Status:      "assigned",
		Priority:    "high",
		AssignedBy:  1,
		AssignedAt:  testutil.FairStart,
	})
	require.NoError(t, err)
}

func TestUserDAO_Postgres_ConcurrentFirstSignup(t *testing.T) {
	gdb := newPostgres(t)
	d := dao.NewUserDAO(gdb)

	const signups = 8
	var wg sync.WaitGroup
	errs := make(chan error, signups)
	for i := 0; i < signups; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := d.InsertWithFirstRole(context.Background(), dao.User{
				Email:    fmt.Sprintf("user%d@fair.org", i),
				Password: "hash",
				Name:     "User",
				Role:     "staff",
			}, "admin")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var admins int64
	require.NoError(t, gdb.Model(&dao.User{}).Where("role = ?", "admin").Count(&admins).Error)
	assert.Equal(t, int64(1), admins)

	_, err := d.InsertWithFirstRole(context.Background(), dao.User{
		Email:    "user0@fair.org",
		Password: "hash",
		Name:     "Again",
		Role:     "staff",
	}, "admin")
	assert.ErrorIs(t, err, dao.ErrUserEmailExists)
}
