// Package conflict decides whether a facility booking request may be accepted.
package conflict

import (
	"time"

	"fixmycondo/internal/domains/booking/model"

	"github.com/shopspring/decimal"
)

// Rules is the part of a facility that constrains bookings.
type Rules struct {
	FacilityID  string
	Active      bool
	MinHours    int
	MaxHours    int
	AdvanceDays int
	HourlyFee   decimal.Decimal
	Deposit     decimal.Decimal
}

type Quote struct {
	TotalFee decimal.Decimal
	Deposit  decimal.Decimal
}

var hour = decimal.NewFromInt(int64(time.Hour))

// Hours is d in hours, rounded to two places for display.
func Hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(hour).Round(2)
}

// Fee prices d at the hourly rate. Only the final amount is rounded.
func Fee(hourly decimal.Decimal, d time.Duration) decimal.Decimal {
	return hourly.Mul(decimal.NewFromInt(int64(d))).Div(hour).Round(2)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Validate checks a requested window against the facility rules and the bookings already
// held on it. Only pending and confirmed bookings on the same facility block a slot.
func Validate(rules Rules, start, end time.Time, existing []model.Booking, now time.Time) (Quote, error) {
	if !rules.Active {
		return Quote{}, &FacilityUnavailableError{FacilityID: rules.FacilityID}
	}

	duration := end.Sub(start)
	if duration <= 0 ||
		duration < time.Duration(rules.MinHours)*time.Hour ||
		duration > time.Duration(rules.MaxHours)*time.Hour {
		return Quote{}, &DurationOutOfRangeError{Duration: duration, MinHours: rules.MinHours, MaxHours: rules.MaxHours}
	}

	if !start.After(now) {
		return Quote{}, &PastDateError{Start: start}
	}

	if rules.AdvanceDays > 0 {
		latest := now.AddDate(0, 0, rules.AdvanceDays)
		if start.After(latest) {
			return Quote{}, &AdvanceWindowError{Start: start, Latest: latest, AdvanceDays: rules.AdvanceDays}
		}
	}

	for _, booking := range existing {
		if booking.FacilityID != rules.FacilityID || !booking.Status.IsBlocking() {
			continue
		}

		if Overlaps(start, end, booking.StartTime, booking.EndTime) {
			return Quote{}, &SlotUnavailableError{BookingID: booking.ID, Start: booking.StartTime, End: booking.EndTime}
		}
	}

	return Quote{
		TotalFee: Fee(rules.HourlyFee, duration),
		Deposit:  rules.Deposit,
	}, nil
}
