package model

import (
	"fixmycondo/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "facility_bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldFacilityID     = "facility_id"
	FieldUserID         = "user_id"
	FieldBookingDate    = "booking_date"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldNumberOfGuests = "number_of_guests"
	FieldPurpose        = "purpose"
	FieldStatus         = "status"
	FieldTotalFee       = "total_fee"
	FieldDepositPaid    = "deposit_paid"
	FieldIsPaid         = "is_paid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// BlockingStatuses are the statuses that hold a facility slot.
var BlockingStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransition reports whether a booking may move from s to the target status.
func (s Status) CanTransition(to Status) bool {
	switch to {
	case StatusConfirmed:
		return s == StatusPending
	case StatusCancelled:
		return s.IsBlocking()
	case StatusCompleted:
		return s == StatusConfirmed
	default:
		return false
	}
}

type Booking struct {
	ID             string          `db:"id"`
	FacilityID     string          `db:"facility_id"`
	UserID         string          `db:"user_id"`
	BookingDate    time.Time       `db:"booking_date"`
	StartTime      time.Time       `db:"start_time"`
	EndTime        time.Time       `db:"end_time"`
	NumberOfGuests int             `db:"number_of_guests"`
	Purpose        string          `db:"purpose"`
	Status         Status          `db:"status"`
	TotalFee       decimal.Decimal `db:"total_fee"`
	DepositPaid    decimal.Decimal `db:"deposit_paid"`
	IsPaid         bool            `db:"is_paid"`
	FacilityName   string          `column:"name" db:"facility_name" table:"facilities"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN facilities ON facilities.id = facility_bookings.facility_id"
}
