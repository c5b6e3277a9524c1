package conflict_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmycondo/internal/domains/booking/conflict"
	"fixmycondo/internal/domains/booking/model"
)

const facilityID = "facility-1"

var (
	now = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	day = time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
)

func at(hour int) time.Time {
	return day.Add(time.Duration(hour) * time.Hour)
}

func rules() conflict.Rules {
	return conflict.Rules{
		FacilityID:  facilityID,
		Active:      true,
		MinHours:    2,
		MaxHours:    8,
		AdvanceDays: 30,
		HourlyFee:   decimal.RequireFromString("25.50"),
		Deposit:     decimal.NewFromInt(100),
	}
}

func booking(id string, start, end int, status model.Status) model.Booking {
	return model.Booking{ID: id, FacilityID: facilityID, StartTime: at(start), EndTime: at(end), Status: status}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		rules    func() conflict.Rules
		start    time.Time
		end      time.Time
		existing []model.Booking
		wantErr  any
	}{
		{
			name:  "accepted with no bookings",
			rules: rules,
			start: at(10),
			end:   at(12),
		},
		{
			name: "inactive facility",
			rules: func() conflict.Rules {
				r := rules()
				r.Active = false

				return r
			},
			start:   at(10),
			end:     at(12),
			wantErr: &conflict.FacilityUnavailableError{},
		},
		{
			name:    "one hour is below the minimum",
			rules:   rules,
			start:   at(14),
			end:     at(15),
			wantErr: &conflict.DurationOutOfRangeError{},
		},
		{
			name:    "nine hours is above the maximum",
			rules:   rules,
			start:   at(8),
			end:     at(17),
			wantErr: &conflict.DurationOutOfRangeError{},
		},
		{
			name: "zero limits are not unlimited",
			rules: func() conflict.Rules {
				r := rules()
				r.MinHours, r.MaxHours = 0, 0

				return r
			},
			start:   at(0),
			end:     at(20),
			wantErr: &conflict.DurationOutOfRangeError{},
		},
		{
			name:    "end before start",
			rules:   rules,
			start:   at(12),
			end:     at(10),
			wantErr: &conflict.DurationOutOfRangeError{},
		},
		{
			name:    "start in the past",
			rules:   rules,
			start:   now.Add(-3 * time.Hour),
			end:     now.Add(-time.Hour),
			wantErr: &conflict.PastDateError{},
		},
		{
			name:    "start exactly now",
			rules:   rules,
			start:   now,
			end:     now.Add(2 * time.Hour),
			wantErr: &conflict.PastDateError{},
		},
		{
			name:    "beyond the advance booking window",
			rules:   rules,
			start:   now.AddDate(0, 0, 31),
			end:     now.AddDate(0, 0, 31).Add(2 * time.Hour),
			wantErr: &conflict.AdvanceWindowError{},
		},
		{
			name:     "overlaps a confirmed booking",
			rules:    rules,
			start:    at(10),
			end:      at(12),
			existing: []model.Booking{booking("b1", 9, 11, model.StatusConfirmed)},
			wantErr:  &conflict.SlotUnavailableError{},
		},
		{
			name:     "contained in a pending booking",
			rules:    rules,
			start:    at(10),
			end:      at(12),
			existing: []model.Booking{booking("b1", 8, 14, model.StatusPending)},
			wantErr:  &conflict.SlotUnavailableError{},
		},
		{
			name:     "back to back after an existing booking",
			rules:    rules,
			start:    at(12),
			end:      at(14),
			existing: []model.Booking{booking("b1", 10, 12, model.StatusConfirmed)},
		},
		{
			name:     "back to back before an existing booking",
			rules:    rules,
			start:    at(8),
			end:      at(10),
			existing: []model.Booking{booking("b1", 10, 12, model.StatusConfirmed)},
		},
		{
			name:  "cancelled and completed bookings do not block",
			rules: rules,
			start: at(10),
			end:   at(12),
			existing: []model.Booking{
				booking("b1", 9, 11, model.StatusCancelled),
				booking("b2", 10, 12, model.StatusCompleted),
			},
		},
		{
			name:  "bookings on other facilities do not block",
			rules: rules,
			start: at(10),
			end:   at(12),
			existing: []model.Booking{
				{ID: "b1", FacilityID: "facility-2", StartTime: at(10), EndTime: at(12), Status: model.StatusConfirmed},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := conflict.Validate(tt.rules(), tt.start, tt.end, tt.existing, now)

			switch want := tt.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *conflict.FacilityUnavailableError:
				assert.ErrorAs(t, err, &want)
			case *conflict.DurationOutOfRangeError:
				assert.ErrorAs(t, err, &want)
			case *conflict.PastDateError:
				assert.ErrorAs(t, err, &want)
			case *conflict.AdvanceWindowError:
				assert.ErrorAs(t, err, &want)
			case *conflict.SlotUnavailableError:
				assert.ErrorAs(t, err, &want)
			}
		})
	}
}

func TestValidate_SlotUnavailableNamesTheBlockingBooking(t *testing.T) {
	existing := []model.Booking{booking("b-confirmed", 9, 11, model.StatusConfirmed)}

	_, err := conflict.Validate(rules(), at(10), at(12), existing, now)

	var slotErr *conflict.SlotUnavailableError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, "b-confirmed", slotErr.BookingID)
	assert.Equal(t, at(9), slotErr.Start)
}

func TestValidate_Quote(t *testing.T) {
	tests := []struct {
		name    string
		fee     string
		length  time.Duration
		wantFee string
	}{
		{name: "whole hours", fee: "25.50", length: 2 * time.Hour, wantFee: "51"},
		{name: "half hour", fee: "25.50", length: 150 * time.Minute, wantFee: "63.75"},
		{name: "eighty minutes", fee: "100", length: 200 * time.Minute, wantFee: "333.33"},
		{name: "repeating hours multiply before rounding", fee: "300", length: 200 * time.Minute, wantFee: "1000"},
		{name: "odd seconds", fee: "36", length: 2*time.Hour + 10*time.Second, wantFee: "72.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rules()
			r.HourlyFee = decimal.RequireFromString(tt.fee)

			quote, err := conflict.Validate(r, at(10), at(10).Add(tt.length), nil, now)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFee, quote.TotalFee.String())
			assert.True(t, decimal.NewFromInt(100).Equal(quote.Deposit))
		})
	}
}

func TestFee(t *testing.T) {
	eightyMinutes := 80 * time.Minute

	assert.Equal(t, "133.33", conflict.Fee(decimal.NewFromInt(100), eightyMinutes).String())
	assert.Equal(t, "400", conflict.Fee(decimal.NewFromInt(300), eightyMinutes).String())
	assert.Equal(t, "1.33", conflict.Hours(eightyMinutes).String())
	assert.Equal(t, "2.5", conflict.Hours(150*time.Minute).String())
}

func TestValidate_AcceptedSetStaysDisjoint(t *testing.T) {
	accepted := []model.Booking{}
	windows := [][2]int{{8, 10}, {9, 11}, {10, 12}, {11, 13}, {12, 14}, {13, 15}, {14, 18}, {16, 20}, {18, 20}}

	for i, w := range windows {
		if _, err := conflict.Validate(rules(), at(w[0]), at(w[1]), accepted, now); err == nil {
			accepted = append(accepted, booking(string(rune('a'+i)), w[0], w[1], model.StatusConfirmed))
		}
	}

	require.NotEmpty(t, accepted)

	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			assert.False(t, conflict.Overlaps(accepted[i].StartTime, accepted[i].EndTime, accepted[j].StartTime, accepted[j].EndTime),
				"%s and %s overlap", accepted[i].ID, accepted[j].ID)
		}
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, conflict.Overlaps(at(9), at(11), at(10), at(12)))
	assert.True(t, conflict.Overlaps(at(10), at(12), at(9), at(11)))
	assert.True(t, conflict.Overlaps(at(10), at(12), at(10), at(12)))
	assert.False(t, conflict.Overlaps(at(10), at(12), at(12), at(14)))
	assert.False(t, conflict.Overlaps(at(12), at(14), at(10), at(12)))
}
