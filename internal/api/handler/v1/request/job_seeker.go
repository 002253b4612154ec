package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/careerfair/jobfair-api/internal/domain"
)

var phoneExp = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

type RegisterJobSeekerRequest struct {
	EventID       uint            `json:"event_id"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	PriorityLevel domain.Priority `json:"priority_level" enums:"low,medium,high"`
}

func (req *RegisterJobSeekerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Match(phoneExp)),
		validation.Field(&req.PriorityLevel, validation.In(priorities...)),
	)
}

type ReviewRegistrationRequest struct {
	Status domain.RegistrationStatus `json:"status" enums:"approved,rejected"`
}

func (req *ReviewRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(domain.RegistrationApproved, domain.RegistrationRejected)),
	)
}
