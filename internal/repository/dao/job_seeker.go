package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	registrationApproved = "approved"

	seekerUnassigned = "unassigned"
	seekerAssigned   = "assigned"
)

type JobSeeker struct {
	ID                 uint   `gorm:"primaryKey"`
	EventID            uint   `gorm:"not null;index"`
	FullName           string `gorm:"not null"`
	Email              string `gorm:"not null;index"`
	Phone              string
	RegistrationStatus string `gorm:"not null;default:pending;index"`    // "pending", "approved" or "rejected"
	AssignmentStatus   string `gorm:"not null;default:unassigned;index"` // "unassigned", "assigned", "confirmed" or "completed"
	PriorityLevel      string `gorm:"not null;default:medium"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type JobSeekerFilter struct {
	EventID            uint
	RegistrationStatus string
	AssignmentStatus   string
	PriorityLevel      string
}

type JobSeekerDAO struct {
	db *gorm.DB
}

func NewJobSeekerDAO(db *gorm.DB) *JobSeekerDAO {
	return &JobSeekerDAO{
		db: db,
	}
}

func (d *JobSeekerDAO) Insert(ctx context.Context, seeker JobSeeker) (JobSeeker, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&Event{}, seeker.EventID).Error; err != nil {
			return notFound(err, ErrEventNotFound)
		}
		return tx.Create(&seeker).Error
	})
	if err != nil {
		return JobSeeker{}, err
	}
	return seeker, nil
}

func (d *JobSeekerDAO) FindByID(ctx context.Context, id uint) (JobSeeker, error) {
	var seeker JobSeeker
	if err := d.db.WithContext(ctx).First(&seeker, id).Error; err != nil {
		return JobSeeker{}, notFound(err, ErrJobSeekerNotFound)
	}
	return seeker, nil
}

func (d *JobSeekerDAO) List(ctx context.Context, filter JobSeekerFilter) ([]JobSeeker, error) {
	query := d.db.WithContext(ctx)
	if filter.EventID != 0 {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.RegistrationStatus != "" {
		query = query.Where("registration_status = ?", filter.RegistrationStatus)
	}
	if filter.AssignmentStatus != "" {
		query = query.Where("assignment_status = ?", filter.AssignmentStatus)
	}
	if filter.PriorityLevel != "" {
		query = query.Where("priority_level = ?", filter.PriorityLevel)
	}

	var seekers []JobSeeker
	if err := query.Order("created_at").Order("id").Find(&seekers).Error; err != nil {
		return nil, err
	}
	return seekers, nil
}

func (d *JobSeekerDAO) UpdateRegistrationStatus(ctx context.Context, id uint, status string) (JobSeeker, error) {
	var seeker JobSeeker
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&seeker, id).Error; err != nil {
			return notFound(err, ErrJobSeekerNotFound)
		}
		return tx.Model(&seeker).Update("registration_status", status).Error
	})
	if err != nil {
		return JobSeeker{}, err
	}

	seeker.RegistrationStatus = status
	return seeker, nil
}
