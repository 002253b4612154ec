package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Venue     string    `gorm:"not null"`
	StartsAt  time.Time `gorm:"not null"`
	EndsAt    time.Time `gorm:"not null"`
	Booths    []Booth   `gorm:"foreignKey:EventID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Employer struct {
	ID           uint   `gorm:"primaryKey"`
	CompanyName  string `gorm:"not null"`
	Industry     string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Booth struct {
	ID         uint      `gorm:"primaryKey"`
	Number     string    `gorm:"not null"`
	EventID    uint      `gorm:"not null;index"`
	EmployerID uint      `gorm:"not null;index"`
	Employer   *Employer `gorm:"foreignKey:EmployerID"`
	Size       string    `gorm:"not null;default:medium"` // "small", "medium" or "large"
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type InterviewSlot struct {
	ID        uint      `gorm:"primaryKey"`
	BoothID   uint      `gorm:"not null;index"`
	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"not null"`
	IsBooked  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BoothFilter struct {
	EventID    uint
	EmployerID uint
	OnlyActive bool
}

type FairDAO struct {
	db *gorm.DB
}

func NewFairDAO(db *gorm.DB) *FairDAO {
	return &FairDAO{
		db: db,
	}
}

func (d *FairDAO) InsertEvent(ctx context.Context, event Event) (Event, error) {
	if err := d.db.WithContext(ctx).Create(&event).Error; err != nil {
		return Event{}, err
	}
	return event, nil
}

func (d *FairDAO) FindEventByID(ctx context.Context, id uint) (Event, error) {
	var event Event
	if err := d.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return Event{}, notFound(err, ErrEventNotFound)
	}
	return event, nil
}

func (d *FairDAO) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := d.db.WithContext(ctx).Order("starts_at").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (d *FairDAO) InsertEmployer(ctx context.Context, employer Employer) (Employer, error) {
	if err := d.db.WithContext(ctx).Create(&employer).Error; err != nil {
		return Employer{}, err
	}
	return employer, nil
}

func (d *FairDAO) FindEmployerByID(ctx context.Context, id uint) (Employer, error) {
	var employer Employer
	if err := d.db.WithContext(ctx).First(&employer, id).Error; err != nil {
		return Employer{}, notFound(err, ErrEmployerNotFound)
	}
	return employer, nil
}

func (d *FairDAO) ListEmployers(ctx context.Context) ([]Employer, error) {
	var employers []Employer
	if err := d.db.WithContext(ctx).Order("company_name").Find(&employers).Error; err != nil {
		return nil, err
	}
	return employers, nil
}

func (d *FairDAO) InsertBooth(ctx context.Context, booth Booth) (Booth, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&Event{}, booth.EventID).Error; err != nil {
			return notFound(err, ErrEventNotFound)
		}
		if err := tx.First(&Employer{}, booth.EmployerID).Error; err != nil {
			return notFound(err, ErrEmployerNotFound)
		}
		return tx.Omit("Employer").Create(&booth).Error
	})
	if err != nil {
		return Booth{}, err
	}
	return booth, nil
}

func (d *FairDAO) FindBoothByID(ctx context.Context, id uint) (Booth, error) {
	var booth Booth
	if err := d.db.WithContext(ctx).Preload("Employer").First(&booth, id).Error; err != nil {
		return Booth{}, notFound(err, ErrBoothNotFound)
	}
	return booth, nil
}

func (d *FairDAO) ListBooths(ctx context.Context, filter BoothFilter) ([]Booth, error) {
	query := d.db.WithContext(ctx).Preload("Employer")
	if filter.EventID != 0 {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.EmployerID != 0 {
		query = query.Where("employer_id = ?", filter.EmployerID)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var booths []Booth
	if err := query.Order("number").Find(&booths).Error; err != nil {
		return nil, err
	}
	return booths, nil
}

func (d *FairDAO) SetBoothActive(ctx context.Context, id uint, active bool) (Booth, error) {
	var booth Booth
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booth, id).Error; err != nil {
			return notFound(err, ErrBoothNotFound)
		}
		return tx.Model(&booth).Update("is_active", active).Error
	})
	if err != nil {
		return Booth{}, err
	}

	booth.IsActive = active
	return booth, nil
}

// InsertInterviewSlot stores slot unless it overlaps another slot of the same booth.
// The overlap check and the insert share one transaction.
func (d *FairDAO) InsertInterviewSlot(ctx context.Context, slot InterviewSlot) (InterviewSlot, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&Booth{}, slot.BoothID).Error; err != nil {
			return notFound(err, ErrBoothNotFound)
		}

		var overlapping int64
		err := tx.Model(&InterviewSlot{}).
			Where("booth_id = ? AND start_time < ? AND end_time > ?", slot.BoothID, slot.EndTime, slot.StartTime).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrSlotOverlap
		}

		return tx.Create(&slot).Error
	})
	if err != nil {
		return InterviewSlot{}, err
	}
	return slot, nil
}

func (d *FairDAO) ListInterviewSlots(ctx context.Context, boothID uint, onlyFree bool) ([]InterviewSlot, error) {
	query := d.db.WithContext(ctx).Where("booth_id = ?", boothID)
	if onlyFree {
		query = query.Where("is_booked = ?", false)
	}

	var slots []InterviewSlot
	if err := query.Order("start_time").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}
