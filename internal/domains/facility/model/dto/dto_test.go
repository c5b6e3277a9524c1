package dto_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmycondo/internal/domains/facility/model"
	"fixmycondo/internal/domains/facility/model/dto"
	"fixmycondo/shared/failure"
	"fixmycondo/shared/validator"
)

func TestCreateFacilityRequest_ToModelLimits(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateFacilityRequest
		wantMin int
		wantMax int
	}{
		{name: "defaults", req: dto.CreateFacilityRequest{Name: "Gym"}, wantMin: 1, wantMax: 4},
		{name: "explicit", req: dto.CreateFacilityRequest{Name: "Hall", MinBookingHours: 2, MaxBookingHours: 8}, wantMin: 2, wantMax: 8},
		{name: "minimum above default maximum", req: dto.CreateFacilityRequest{Name: "Hall", MinBookingHours: 6}, wantMin: 6, wantMax: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facility := tt.req.ToModel("admin-1")

			assert.Equal(t, tt.wantMin, facility.MinBookingHours)
			assert.Equal(t, tt.wantMax, facility.MaxBookingHours)
			assert.Equal(t, model.DefaultAdvanceBookingDays, facility.AdvanceBookingDays)
		})
	}
}

func TestCreateFacilityRequest_Validation(t *testing.T) {
	negative := decimal.NewFromInt(-5)

	tests := []struct {
		name      string
		req       any
		wantField string
	}{
		{
			name:      "negative booking fee",
			req:       &dto.CreateFacilityRequest{Name: "Pool", BookingFee: negative},
			wantField: "booking_fee",
		},
		{
			name:      "negative deposit",
			req:       &dto.CreateFacilityRequest{Name: "Pool", DepositRequired: negative},
			wantField: "deposit_required",
		},
		{
			name:      "maximum below minimum",
			req:       &dto.CreateFacilityRequest{Name: "Pool", MinBookingHours: 3, MaxBookingHours: 2},
			wantField: "max_booking_hours",
		},
		{
			name:      "negative fee on update",
			req:       &dto.UpdateFacilityRequest{BookingFee: &negative},
			wantField: "booking_fee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error

			switch req := tt.req.(type) {
			case *dto.CreateFacilityRequest:
				err = validator.ValidateStruct(req)
			case *dto.UpdateFacilityRequest:
				err = validator.ValidateStruct(req)
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

			fields, ok := failure.GetDetails(err)["fields"].(map[string]string)
			require.True(t, ok)
			assert.Contains(t, fields, tt.wantField)
		})
	}

	t.Run("zero fees are free facilities", func(t *testing.T) {
		assert.NoError(t, validator.ValidateStruct(&dto.CreateFacilityRequest{Name: "Garden"}))
	})
}
