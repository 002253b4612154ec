package dao

import "gorm.io/gorm"

// activeAssignmentIndex backs the one-active-assignment-per-(job seeker, booth) rule
// when two requests race past the in-transaction check.
const activeAssignmentIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_booth_assignments_active
ON booth_assignments (job_seeker_id, booth_id)
WHERE status IN ('assigned', 'confirmed')`

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Event{},
		&Employer{},
		&Booth{},
		&InterviewSlot{},
		&JobSeeker{},
		&BoothAssignment{},
	)
	if err != nil {
		return err
	}

	return db.Exec(activeAssignmentIndex).Error
}
