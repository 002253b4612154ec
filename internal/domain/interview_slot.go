package domain

import "time"

type InterviewSlot struct {
	ID        uint      `json:"id"`
	BoothID   uint      `json:"booth_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Overlaps reports whether the half-open ranges [StartTime, EndTime) of both slots intersect.
func (s InterviewSlot) Overlaps(other InterviewSlot) bool {
	return s.StartTime.Before(other.EndTime) && other.StartTime.Before(s.EndTime)
}
