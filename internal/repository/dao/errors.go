package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEmployerNotFound   = errors.New("employer not found")
	ErrBoothNotFound      = errors.New("booth not found")
	ErrBoothInactive      = errors.New("booth is not active")
	ErrSlotNotFound       = errors.New("interview slot not found")
	ErrSlotNotInBooth     = errors.New("interview slot does not belong to booth")
	ErrSlotUnavailable    = errors.New("interview slot is already booked")
	ErrSlotOverlap        = errors.New("interview slot overlaps an existing slot")
	ErrJobSeekerNotFound  = errors.New("job seeker not found")
	ErrJobSeekerNotReady  = errors.New("job seeker registration is not approved")
	ErrAlreadyAssigned    = errors.New("job seeker is already assigned to this booth")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}

	return err
}
