package facility

import (
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/facility/model"
	"fixmycondo/internal/domains/facility/model/dto"
	"fixmycondo/internal/domains/facility/service"
	"fixmycondo/shared"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/validator"
	"fixmycondo/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Facility
	otel    otel.Otel
}

func New(service service.Facility, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/facilities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFacility)
		routerGroup.Get("/", handler.GetFacilities)
		routerGroup.Get("/{id}", handler.GetFacilityByID)
		routerGroup.Patch("/{id}", handler.UpdateFacility)
		routerGroup.Delete("/{id}", handler.DeleteFacility)
	})
}

// CreateFacility handles the creation of a new bookable facility.
// @Summary Create a new facility
// @Description Create a facility with its fee, deposit and booking rules.
// @Tags Facility
// @Accept json
// @Produce json
// @Param request body dto.CreateFacilityRequest true "Create Facility Request"
// @Success 201 {object} response.Data[dto.FacilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities [post]
// @Security BearerAuth
func (handler *Handler) CreateFacility(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFacility")
	defer scope.End()

	req := dto.CreateFacilityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create facility")

		response.WithError(writer, err)

		return
	}

	user, _ := shared.Actor(ctx)
	scope.AddEvent("Facility created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetFacilities retrieves all facilities based on query parameters.
// @Summary Get all facilities
// @Description Retrieve all facilities with optional filtering and pagination.
// @Tags Facility
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param is_active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetFacilitiesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/facilities [get]
// @Security BearerAuth
func (handler *Handler) GetFacilities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacilities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, dto.Sortable)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if location := r.URL.Query().Get(model.FieldLocation); location != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorLike,
			Value:    location,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	facilities, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facilities")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Facilities retrieved successfully")

	response.WithJSON(w, http.StatusOK, facilities)
}

// GetFacilityByID retrieves a facility by its ID.
// @Summary Get a facility by ID
// @Tags Facility
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Data[dto.FacilityResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFacilityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFacilityByID")
	defer scope.End()

	facility, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facility by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, facility)
}

// UpdateFacility updates an existing facility by its ID.
// @Summary Update a facility by ID
// @Tags Facility
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Param request body dto.UpdateFacilityRequest true "Update Facility Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFacility")
	defer scope.End()

	req := dto.UpdateFacilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update facility")

		response.WithError(w, err)

		return
	}

	user, _ := shared.Actor(ctx)
	scope.AddEvent("Facility updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Facility updated successfully")
}

// DeleteFacility removes a facility that has no pending or confirmed bookings.
// @Summary Delete a facility by ID
// @Tags Facility
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFacility")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete facility")

		response.WithError(w, err)

		return
	}

	user, _ := shared.Actor(ctx)
	scope.AddEvent("Facility deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Facility deleted successfully")
}
