package facility_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "fixmycondo/infras/otel/mocks"
	facilityMocks "fixmycondo/internal/domains/facility/mocks"
	"fixmycondo/internal/domains/facility/model/dto"
	"fixmycondo/internal/handlers/facility"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/failure"
)

func newRouter(t *testing.T) (chi.Router, *facilityMocks.MockFacilityService) {
	t.Helper()

	svc := facilityMocks.NewMockFacilityService(gomock.NewController(t))
	handler := facility.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router chi.Router, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	var payload map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &payload)

	return rec, payload
}

func TestFacilityHandler_CreateFacility(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing name", body: `{"booking_fee":"20"}`, wantField: "name"},
		{name: "negative fee", body: `{"name":"Pool","booking_fee":"-20"}`, wantField: "booking_fee"},
		{name: "negative deposit", body: `{"name":"Pool","deposit_required":"-1"}`, wantField: "deposit_required"},
		{name: "maximum below minimum", body: `{"name":"Hall","min_booking_hours":4,"max_booking_hours":2}`, wantField: "max_booking_hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t)

			rec, body := serve(router, http.MethodPost, "/facilities/", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			details, ok := body["details"].(map[string]any)
			require.True(t, ok)
			assert.Contains(t, details["fields"], tt.wantField)
		})
	}

	t.Run("created", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req dto.CreateFacilityRequest) (dto.FacilityResponse, error) {
				assert.True(t, decimal.RequireFromString("25.50").Equal(req.BookingFee))

				mod := req.ToModel("admin-1")

				return dto.FacilityResponse{
					ID:              "f-1",
					Name:            mod.Name,
					BookingFee:      mod.BookingFee,
					MinBookingHours: mod.MinBookingHours,
					MaxBookingHours: mod.MaxBookingHours,
					IsActive:        true,
				}, nil
			})

		rec, body := serve(router, http.MethodPost, "/facilities/", `{"name":"Function Hall","booking_fee":"25.50"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "f-1", data["id"])
		assert.InDelta(t, 1, data["min_booking_hours"], 0)
		assert.InDelta(t, 4, data["max_booking_hours"], 0)
	})
}

func TestFacilityHandler_GetFacilities(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFacilitiesResponse, error) {
			require.Len(t, filter.Filters, 2)
			assert.Equal(t, "pool", filter.Filters[0].(gDto.Filter).Value)
			assert.Equal(t, true, filter.Filters[1].(gDto.Filter).Value)

			return dto.GetFacilitiesResponse{Facilities: []dto.FacilityResponse{}, Pagination: gDto.NewPagination(0, 10)}, nil
		})

	rec, _ := serve(router, http.MethodGet, "/facilities/?name=pool&is_active=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFacilityHandler_ByID(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		body     string
		setup    func(svc *facilityMocks.MockFacilityService)
		wantCode int
	}{
		{
			name:   "get unknown",
			method: http.MethodGet,
			setup: func(svc *facilityMocks.MockFacilityService) {
				svc.EXPECT().Get(gomock.Any(), "f-1").Return(dto.FacilityResponse{}, failure.NotFound("facility not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "update with zero minimum",
			method:   http.MethodPatch,
			body:     `{"min_booking_hours":0}`,
			setup:    func(*facilityMocks.MockFacilityService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "update with negative fee",
			method:   http.MethodPatch,
			body:     `{"booking_fee":"-0.01"}`,
			setup:    func(*facilityMocks.MockFacilityService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "update",
			method: http.MethodPatch,
			body:   `{"max_booking_hours":6}`,
			setup: func(svc *facilityMocks.MockFacilityService) {
				svc.EXPECT().Update(gomock.Any(), gomock.Any(), "f-1").Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "delete with open bookings",
			method: http.MethodDelete,
			setup: func(svc *facilityMocks.MockFacilityService) {
				svc.EXPECT().Delete(gomock.Any(), "f-1").Return(failure.Conflict("facility still has pending or confirmed bookings"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			setup: func(svc *facilityMocks.MockFacilityService) {
				svc.EXPECT().Delete(gomock.Any(), "f-1").Return(nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setup(svc)

			rec, _ := serve(router, tt.method, "/facilities/f-1", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
