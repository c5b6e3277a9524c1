package dto

import (
	"fixmycondo/internal/domains/booking/conflict"
	"fixmycondo/internal/domains/booking/model"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	gModel "fixmycondo/shared/model"
	"fixmycondo/shared/timezone"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var Sortable = gDto.NewSortColumns(model.TableName,
	constant.FieldCreatedAt, model.FieldBookingDate, model.FieldStartTime, model.FieldStatus)

type CreateBookingRequest struct {
	FacilityID     string `json:"facility_id"      validate:"required,uuid"`
	BookingDate    string `json:"booking_date"     validate:"omitempty,datetime=2006-01-02"`
	StartTime      string `json:"start_time"       validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime        string `json:"end_time"         validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	NumberOfGuests int    `json:"number_of_guests" validate:"omitempty,min=0"`
	Purpose        string `json:"purpose"          validate:"omitempty,max=500"`
}

// Window parses the requested interval. booking_date defaults to the local date of start_time.
func (c *CreateBookingRequest) Window() (date, start, end time.Time, err error) {
	start, err = time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return date, start, end, fmt.Errorf("invalid start_time: %w", err)
	}

	end, err = time.Parse(constant.DateFormat, c.EndTime)
	if err != nil {
		return date, start, end, fmt.Errorf("invalid end_time: %w", err)
	}

	if c.BookingDate == constant.Empty {
		return timezone.Date(start), start, end, nil
	}

	date, err = time.Parse(constant.DateOnlyFormat, c.BookingDate)
	if err != nil {
		return date, start, end, fmt.Errorf("invalid booking_date: %w", err)
	}

	return date, start, end, nil
}

func (c *CreateBookingRequest) ToModel(user string, date, start, end time.Time, quote conflict.Quote) model.Booking {
	return model.Booking{
		ID:             uuid.NewString(),
		FacilityID:     c.FacilityID,
		UserID:         user,
		BookingDate:    date,
		StartTime:      start,
		EndTime:        end,
		NumberOfGuests: c.NumberOfGuests,
		Purpose:        c.Purpose,
		Status:         model.StatusPending,
		TotalFee:       quote.TotalFee,
		DepositPaid:    decimal.Zero,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateBookingRequest struct {
	Status      model.Status     `db:"status"       json:"status"       validate:"omitempty,enum"`
	DepositPaid *decimal.Decimal `db:"deposit_paid" json:"deposit_paid" validate:"omitempty,decimalmin=0"`
	IsPaid      *bool            `db:"is_paid"      json:"is_paid"      validate:"omitempty"`
}

// BookingQuery carries the listing filters of GET /facilities/bookings.
type BookingQuery struct {
	MyBookings bool
	Upcoming   bool
	FacilityID string
	Status     model.Status
}

type BookingResponse struct {
	ID             string          `json:"id"`
	FacilityID     string          `json:"facility_id"`
	FacilityName   string          `json:"facility_name,omitempty"`
	UserID         string          `json:"user_id"`
	BookingDate    string          `json:"booking_date"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	DurationHours  decimal.Decimal `json:"duration_hours"`
	NumberOfGuests int             `json:"number_of_guests"`
	Purpose        string          `json:"purpose"`
	Status         model.Status    `json:"status"`
	TotalFee       decimal.Decimal `json:"total_fee"`
	// DepositDue is only set on the create response, from the facility rules at booking time.
	DepositDue  *decimal.Decimal `json:"deposit_due,omitempty"`
	DepositPaid decimal.Decimal  `json:"deposit_paid"`
	IsPaid      bool             `json:"is_paid"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.FacilityID = model.FacilityID
	r.FacilityName = model.FacilityName
	r.UserID = model.UserID
	r.BookingDate = model.BookingDate.Format(constant.DateOnlyFormat)
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.DurationHours = conflict.Hours(model.EndTime.Sub(model.StartTime))
	r.NumberOfGuests = model.NumberOfGuests
	r.Purpose = model.Purpose
	r.Status = model.Status
	r.TotalFee = model.TotalFee
	r.DepositPaid = model.DepositPaid
	r.IsPaid = model.IsPaid
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	gDto.Pagination
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.Pagination = gDto.NewPagination(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is published on the booking topic whenever a booking is created or changes status.
type BookingEvent struct {
	Type       string       `json:"type"`
	BookingID  string       `json:"booking_id"`
	FacilityID string       `json:"facility_id"`
	UserID     string       `json:"user_id"`
	Status     model.Status `json:"status"`
	StartTime  time.Time    `json:"start_time"`
	EndTime    time.Time    `json:"end_time"`
	ActorID    string       `json:"actor_id"`
	OccurredAt time.Time    `json:"occurred_at"`
}
