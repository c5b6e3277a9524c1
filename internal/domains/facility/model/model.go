package model

import (
	"fixmycondo/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "facilities"
	EntityName = "facility"

	FieldID                 = "id"
	FieldName               = "name"
	FieldDescription        = "description"
	FieldLocation           = "location"
	FieldCapacity           = "capacity"
	FieldBookingFee         = "booking_fee"
	FieldDepositRequired    = "deposit_required"
	FieldMinBookingHours    = "min_booking_hours"
	FieldMaxBookingHours    = "max_booking_hours"
	FieldAdvanceBookingDays = "advance_booking_days"
	FieldIsActive           = "is_active"
)

const (
	DefaultMinBookingHours    = 1
	DefaultMaxBookingHours    = 4
	DefaultAdvanceBookingDays = 30
)

type Facility struct {
	ID                 string          `db:"id"`
	Name               string          `db:"name"`
	Description        string          `db:"description"`
	Location           string          `db:"location"`
	Capacity           int             `db:"capacity"`
	BookingFee         decimal.Decimal `db:"booking_fee"`
	DepositRequired    decimal.Decimal `db:"deposit_required"`
	MinBookingHours    int             `db:"min_booking_hours"`
	MaxBookingHours    int             `db:"max_booking_hours"`
	AdvanceBookingDays int             `db:"advance_booking_days"`
	IsActive           bool            `db:"is_active"`
	model.Metadata
}
