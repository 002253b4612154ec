package domain

import "time"

type BoothSize string

const (
	BoothSmall  BoothSize = "small"
	BoothMedium BoothSize = "medium"
	BoothLarge  BoothSize = "large"
)

var boothCapacities = map[BoothSize]int{
	BoothSmall:  10,
	BoothMedium: 20,
	BoothLarge:  30,
}

// Capacity is the number of job seekers a booth of this size can hold.
// Unknown sizes have no capacity.
func (s BoothSize) Capacity() int {
	return boothCapacities[s]
}

func (s BoothSize) IsValid() bool {
	_, ok := boothCapacities[s]
	return ok
}

type Booth struct {
	ID         uint      `json:"id"`
	Number     string    `json:"number"`
	EventID    uint      `json:"event_id"`
	EmployerID uint      `json:"employer_id"`
	Employer   *Employer `json:"employer,omitempty"`
	Size       BoothSize `json:"size"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (b Booth) Capacity() int {
	return b.Size.Capacity()
}

// AvailableBooth is a booth together with its current occupancy.
type AvailableBooth struct {
	Booth
	Capacity          int `json:"capacity"`
	ActiveAssignments int `json:"active_assignments"`
	RemainingCapacity int `json:"remaining_capacity"`
}
