// Package testutil holds fixtures shared by the repository and service tests.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/careerfair/jobfair-api/internal/repository/dao"
)

// FairStart is the opening time used by seeded events and slots.
var FairStart = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// NewTestDB returns an in-memory sqlite database with every table migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Each connection would otherwise get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dao.InitTables(db))

	return db
}

func SeedEvent(t *testing.T, db *gorm.DB, name string) dao.Event {
	t.Helper()

	event := dao.Event{
		Name:     name,
		Venue:    "Hall A",
		StartsAt: FairStart,
		EndsAt:   FairStart.Add(8 * time.Hour),
	}
	require.NoError(t, db.Create(&event).Error)

	return event
}

func SeedEmployer(t *testing.T, db *gorm.DB, company string) dao.Employer {
	t.Helper()

	employer := dao.Employer{CompanyName: company, Industry: "Software"}
	require.NoError(t, db.Create(&employer).Error)

	return employer
}

func SeedBooth(t *testing.T, db *gorm.DB, eventID, employerID uint, number, size string) dao.Booth {
	t.Helper()

	booth := dao.Booth{
		Number:     number,
		EventID:    eventID,
		EmployerID: employerID,
		Size:       size,
		IsActive:   true,
	}
	require.NoError(t, db.Omit("Employer").Create(&booth).Error)

	return booth
}

func SeedSlot(t *testing.T, db *gorm.DB, boothID uint, offset time.Duration) dao.InterviewSlot {
	t.Helper()

	slot := dao.InterviewSlot{
		BoothID:   boothID,
		StartTime: FairStart.Add(offset),
		EndTime:   FairStart.Add(offset + 30*time.Minute),
	}
	require.NoError(t, db.Create(&slot).Error)

	return slot
}

// SeedJobSeeker inserts a job seeker with the given registration status and priority.
func SeedJobSeeker(t *testing.T, db *gorm.DB, eventID uint, name, registration, priority string) dao.JobSeeker {
	t.Helper()

	seeker := dao.JobSeeker{
		EventID:            eventID,
		FullName:           name,
		Email:              name + "@example.com",
		RegistrationStatus: registration,
		AssignmentStatus:   "unassigned",
		PriorityLevel:      priority,
	}
	require.NoError(t, db.Create(&seeker).Error)

	return seeker
}
