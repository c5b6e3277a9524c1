package dto

import (
	"fixmycondo/internal/domains/facility/model"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	gModel "fixmycondo/shared/model"
	"fixmycondo/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var Sortable = gDto.NewSortColumns(model.TableName,
	model.FieldName, model.FieldCapacity, model.FieldBookingFee, constant.FieldCreatedAt)

type CreateFacilityRequest struct {
	Name               string          `json:"name"                 validate:"required,max=100"`
	Description        string          `json:"description"          validate:"omitempty,max=500"`
	Location           string          `json:"location"             validate:"omitempty,max=100"`
	Capacity           int             `json:"capacity"             validate:"omitempty,min=0"`
	BookingFee         decimal.Decimal `json:"booking_fee"          validate:"decimalmin=0"`
	DepositRequired    decimal.Decimal `json:"deposit_required"     validate:"decimalmin=0"`
	MinBookingHours    int             `json:"min_booking_hours"    validate:"omitempty,min=1"`
	MaxBookingHours    int             `json:"max_booking_hours"    validate:"omitempty,min=1,gtefield=MinBookingHours"`
	AdvanceBookingDays int             `json:"advance_booking_days" validate:"omitempty,min=0"`
	IsActive           *bool           `json:"is_active"            validate:"omitempty"`
}

func (c *CreateFacilityRequest) ToModel(user string) model.Facility {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	advance := c.AdvanceBookingDays
	if advance == 0 {
		advance = model.DefaultAdvanceBookingDays
	}

	minHours := c.MinBookingHours
	if minHours == 0 {
		minHours = model.DefaultMinBookingHours
	}

	maxHours := c.MaxBookingHours
	if maxHours == 0 {
		maxHours = max(model.DefaultMaxBookingHours, minHours)
	}

	return model.Facility{
		ID:                 uuid.NewString(),
		Name:               c.Name,
		Description:        c.Description,
		Location:           c.Location,
		Capacity:           c.Capacity,
		BookingFee:         c.BookingFee,
		DepositRequired:    c.DepositRequired,
		MinBookingHours:    minHours,
		MaxBookingHours:    maxHours,
		AdvanceBookingDays: advance,
		IsActive:           active,
		Metadata:           gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateFacilityRequest struct {
	Name               string           `db:"name"                 json:"name"                 validate:"omitempty,max=100"`
	Description        string           `db:"description"          json:"description"          validate:"omitempty,max=500"`
	Location           string           `db:"location"             json:"location"             validate:"omitempty,max=100"`
	Capacity           *int             `db:"capacity"             json:"capacity"             validate:"omitempty,min=0"`
	BookingFee         *decimal.Decimal `db:"booking_fee"          json:"booking_fee"          validate:"omitempty,decimalmin=0"`
	DepositRequired    *decimal.Decimal `db:"deposit_required"     json:"deposit_required"     validate:"omitempty,decimalmin=0"`
	MinBookingHours    *int             `db:"min_booking_hours"    json:"min_booking_hours"    validate:"omitempty,min=1"`
	MaxBookingHours    *int             `db:"max_booking_hours"    json:"max_booking_hours"    validate:"omitempty,min=1"`
	AdvanceBookingDays *int             `db:"advance_booking_days" json:"advance_booking_days" validate:"omitempty,min=0"`
	IsActive           *bool            `db:"is_active"            json:"is_active"            validate:"omitempty"`
}

type FacilityResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Location           string          `json:"location"`
	Capacity           int             `json:"capacity"`
	BookingFee         decimal.Decimal `json:"booking_fee"`
	DepositRequired    decimal.Decimal `json:"deposit_required"`
	MinBookingHours    int             `json:"min_booking_hours"`
	MaxBookingHours    int             `json:"max_booking_hours"`
	AdvanceBookingDays int             `json:"advance_booking_days"`
	IsActive           bool            `json:"is_active"`
	gDto.Metadata
}

func (r *FacilityResponse) FromModel(model model.Facility) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.BookingFee = model.BookingFee
	r.DepositRequired = model.DepositRequired
	r.MinBookingHours = model.MinBookingHours
	r.MaxBookingHours = model.MaxBookingHours
	r.AdvanceBookingDays = model.AdvanceBookingDays
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	gDto.Pagination
}

func (r *GetFacilitiesResponse) FromModels(models []model.Facility, totalData, limit int) {
	r.Pagination = gDto.NewPagination(totalData, limit)

	r.Facilities = make([]FacilityResponse, len(models))
	for i, mod := range models {
		r.Facilities[i].FromModel(mod)
	}
}
