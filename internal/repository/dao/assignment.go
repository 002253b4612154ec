package dao

import (
	"context"
	"slices"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var activeAssignmentStatuses = []string{"assigned", "confirmed"}

type BoothAssignment struct {
	ID          uint           `gorm:"primaryKey"`
	JobSeekerID uint           `gorm:"not null;index"`
	JobSeeker   *JobSeeker     `gorm:"foreignKey:JobSeekerID"`
	BoothID     uint           `gorm:"not null;index"`
	Booth       *Booth         `gorm:"foreignKey:BoothID"`
	SlotID      *uint          `gorm:"index"`
	Slot        *InterviewSlot `gorm:"foreignKey:SlotID"`
	Status      string         `gorm:"not null;default:assigned;index"`
	Priority    string         `gorm:"not null;default:medium"`
	Notes       string
	AssignedBy  uint      `gorm:"not null"`
	AssignedAt  time.Time `gorm:"not null"`
	UpdatedAt   time.Time
}

// StatusChange describes an assignment status update and its effect on the job seeker.
type StatusChange struct {
	Status       string
	SeekerStatus string
	Notes        string
	ReleaseSlot  bool
}

type AssignmentFilter struct {
	BoothID uint
	Status  string
}

type StatusCount struct {
	Status string
	Count  int
}

type SeekerCount struct {
	RegistrationStatus string
	AssignmentStatus   string
	Count              int
}

type BoothLoad struct {
	BoothID uint
	Count   int
}

type AssignmentDAO struct {
	db *gorm.DB
}

func NewAssignmentDAO(db *gorm.DB) *AssignmentDAO {
	return &AssignmentDAO{
		db: db,
	}
}

// Assign validates and stores a new assignment in one transaction: the job seeker
// must be approved, the booth active, no active assignment may exist for the pair and
// the optional slot must be a free slot of the booth.
func (d *AssignmentDAO) Assign(ctx context.Context, assignment BoothAssignment) (BoothAssignment, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seeker JobSeeker
		if err := tx.First(&seeker, assignment.JobSeekerID).Error; err != nil {
			return notFound(err, ErrJobSeekerNotFound)
		}
		if seeker.RegistrationStatus != registrationApproved {
			return ErrJobSeekerNotReady
		}

		var booth Booth
		if err := tx.First(&booth, assignment.BoothID).Error; err != nil {
			return notFound(err, ErrBoothNotFound)
		}
		if !booth.IsActive {
			return ErrBoothInactive
		}

		var active int64
		err := tx.Model(&BoothAssignment{}).
			Where("job_seeker_id = ? AND booth_id = ? AND status IN ?", seeker.ID, booth.ID, activeAssignmentStatuses).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrAlreadyAssigned
		}

		if assignment.SlotID != nil {
			var slot InterviewSlot
			if err := tx.First(&slot, *assignment.SlotID).Error; err != nil {
				return notFound(err, ErrSlotNotFound)
			}
			if slot.BoothID != booth.ID {
				return ErrSlotNotInBooth
			}
			if slot.IsBooked {
				return ErrSlotUnavailable
			}
		}

		if err := tx.Omit(clause.Associations).Create(&assignment).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyAssigned
			}
			return err
		}

		err = tx.Model(&JobSeeker{}).Where("id = ?", seeker.ID).Update("assignment_status", seekerAssigned).Error
		if err != nil {
			return err
		}

		if assignment.SlotID != nil {
			result := tx.Model(&InterviewSlot{}).
				Where("id = ? AND is_booked = ?", *assignment.SlotID, false).
				Update("is_booked", true)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrSlotUnavailable
			}
		}

		return nil
	})
	if err != nil {
		return BoothAssignment{}, err
	}

	return assignment, nil
}

// UpdateStatus changes an assignment's status and applies change.SeekerStatus to its
// job seeker. A released slot is marked free and unlinked from the assignment. Moving a
// cancelled or completed assignment back to an active status requires an active booth.
func (d *AssignmentDAO) UpdateStatus(ctx context.Context, id uint, change StatusChange) (BoothAssignment, error) {
	var assignment BoothAssignment
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, id).Error; err != nil {
			return notFound(err, ErrAssignmentNotFound)
		}

		reviving := slices.Contains(activeAssignmentStatuses, change.Status) &&
			!slices.Contains(activeAssignmentStatuses, assignment.Status)
		if reviving {
			var booth Booth
			if err := tx.First(&booth, assignment.BoothID).Error; err != nil {
				return notFound(err, ErrBoothNotFound)
			}
			if !booth.IsActive {
				return ErrBoothInactive
			}
		}

		updates := map[string]interface{}{"status": change.Status}
		if change.Notes != "" {
			updates["notes"] = change.Notes
		}
		releasedSlot := assignment.SlotID
		if change.ReleaseSlot && releasedSlot != nil {
			updates["slot_id"] = nil
		}

		if err := tx.Model(&BoothAssignment{ID: assignment.ID}).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyAssigned
			}
			return err
		}

		err := tx.Model(&JobSeeker{}).
			Where("id = ?", assignment.JobSeekerID).
			Update("assignment_status", change.SeekerStatus).Error
		if err != nil {
			return err
		}

		if change.ReleaseSlot && releasedSlot != nil {
			if err := releaseSlot(tx, *releasedSlot); err != nil {
				return err
			}
		}

		assignment = BoothAssignment{}
		return tx.First(&assignment, id).Error
	})
	if err != nil {
		return BoothAssignment{}, err
	}

	return assignment, nil
}

// Delete removes an assignment, resets its job seeker to unassigned and frees its slot.
func (d *AssignmentDAO) Delete(ctx context.Context, id uint) (BoothAssignment, error) {
	var assignment BoothAssignment
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, id).Error; err != nil {
			return notFound(err, ErrAssignmentNotFound)
		}

		if err := tx.Delete(&BoothAssignment{}, assignment.ID).Error; err != nil {
			return err
		}

		err := tx.Model(&JobSeeker{}).
			Where("id = ?", assignment.JobSeekerID).
			Update("assignment_status", seekerUnassigned).Error
		if err != nil {
			return err
		}

		if assignment.SlotID != nil {
			return releaseSlot(tx, *assignment.SlotID)
		}
		return nil
	})
	if err != nil {
		return BoothAssignment{}, err
	}

	return assignment, nil
}

func releaseSlot(tx *gorm.DB, slotID uint) error {
	return tx.Model(&InterviewSlot{}).Where("id = ?", slotID).Update("is_booked", false).Error
}

func (d *AssignmentDAO) FindByID(ctx context.Context, id uint) (BoothAssignment, error) {
	var assignment BoothAssignment
	err := d.db.WithContext(ctx).
		Preload("JobSeeker").
		Preload("Slot").
		First(&assignment, id).Error
	if err != nil {
		return BoothAssignment{}, notFound(err, ErrAssignmentNotFound)
	}
	return assignment, nil
}

func (d *AssignmentDAO) List(ctx context.Context, filter AssignmentFilter) ([]BoothAssignment, error) {
	query := d.db.WithContext(ctx).Preload("JobSeeker").Preload("Slot")
	if filter.BoothID != 0 {
		query = query.Where("booth_id = ?", filter.BoothID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var assignments []BoothAssignment
	if err := query.Order("assigned_at").Order("id").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ActiveLoadByBooth counts active assignments per booth. Booths without any are omitted.
func (d *AssignmentDAO) ActiveLoadByBooth(ctx context.Context, boothIDs []uint) ([]BoothLoad, error) {
	var loads []BoothLoad
	if len(boothIDs) == 0 {
		return loads, nil
	}

	err := d.db.WithContext(ctx).
		Model(&BoothAssignment{}).
		Select("booth_id, COUNT(*) AS count").
		Where("booth_id IN ? AND status IN ?", boothIDs, activeAssignmentStatuses).
		Group("booth_id").
		Scan(&loads).Error
	if err != nil {
		return nil, err
	}
	return loads, nil
}

// CountByStatus counts assignments per status, optionally restricted to the booths of one event.
func (d *AssignmentDAO) CountByStatus(ctx context.Context, eventID uint) ([]StatusCount, error) {
	query := d.db.WithContext(ctx).
		Model(&BoothAssignment{}).
		Select("booth_assignments.status AS status, COUNT(*) AS count")
	if eventID != 0 {
		query = query.
			Joins("JOIN booths ON booths.id = booth_assignments.booth_id").
			Where("booths.event_id = ?", eventID)
	}

	var counts []StatusCount
	if err := query.Group("booth_assignments.status").Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// CountSeekers counts job seekers per (registration status, assignment status) pair.
func (d *AssignmentDAO) CountSeekers(ctx context.Context, eventID uint) ([]SeekerCount, error) {
	query := d.db.WithContext(ctx).
		Model(&JobSeeker{}).
		Select("registration_status, assignment_status, COUNT(*) AS count")
	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}

	var counts []SeekerCount
	if err := query.Group("registration_status, assignment_status").Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
