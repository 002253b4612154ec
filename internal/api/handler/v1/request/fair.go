package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/careerfair/jobfair-api/internal/domain"
)

type CreateEventRequest struct {
	Name     string    `json:"name"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Venue, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
	)
}

type CreateEmployerRequest struct {
	CompanyName  string `json:"company_name"`
	Industry     string `json:"industry"`
	ContactEmail string `json:"contact_email"`
}

func (req *CreateEmployerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CompanyName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Industry, validation.Length(0, 100)),
		validation.Field(&req.ContactEmail, is.Email),
	)
}

type CreateBoothRequest struct {
	Number     string           `json:"number"`
	EventID    uint             `json:"event_id"`
	EmployerID uint             `json:"employer_id"`
	Size       domain.BoothSize `json:"size" enums:"small,medium,large"`
}

func (req *CreateBoothRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.EmployerID, validation.Required),
		validation.Field(&req.Size, validation.In(domain.BoothSmall, domain.BoothMedium, domain.BoothLarge)),
	)
}

type SetBoothActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

func (req *SetBoothActiveRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IsActive, validation.NotNil),
	)
}

type CreateInterviewSlotRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (req *CreateInterviewSlotRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StartTime, validation.Required),
		validation.Field(&req.EndTime, validation.Required),
	)
}
