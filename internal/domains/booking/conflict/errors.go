package conflict

import (
	"fmt"
	"time"
)

type FacilityUnavailableError struct {
	FacilityID string
}

func (e *FacilityUnavailableError) Error() string {
	return "facility is not available for booking"
}

type DurationOutOfRangeError struct {
	Duration time.Duration
	MinHours int
	MaxHours int
}

func (e *DurationOutOfRangeError) Error() string {
	if e.Duration <= 0 {
		return "end time must be after start time"
	}

	return fmt.Sprintf("booking duration must be between %d and %d hours", e.MinHours, e.MaxHours)
}

type PastDateError struct {
	Start time.Time
}

func (e *PastDateError) Error() string {
	return "booking must start in the future"
}

type AdvanceWindowError struct {
	Start       time.Time
	Latest      time.Time
	AdvanceDays int
}

func (e *AdvanceWindowError) Error() string {
	return fmt.Sprintf("bookings can only be made up to %d days in advance", e.AdvanceDays)
}

// SlotUnavailableError carries the booking that already holds the requested window.
// BookingID is empty when the clash was reported by the storage constraint.
type SlotUnavailableError struct {
	BookingID string
	Start     time.Time
	End       time.Time
}

func (e *SlotUnavailableError) Error() string {
	return "the selected time slot is not available"
}
