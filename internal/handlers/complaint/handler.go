package complaint

import (
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/complaint/lifecycle"
	"fixmycondo/internal/domains/complaint/model"
	"fixmycondo/internal/domains/complaint/model/dto"
	"fixmycondo/internal/domains/complaint/service"
	"fixmycondo/shared"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/failure"
	"fixmycondo/shared/validator"
	"fixmycondo/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Complaint
	otel    otel.Otel
}

func New(service service.Complaint, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/complaints", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateComplaint)
		routerGroup.Get("/", handler.GetComplaints)
		routerGroup.Get("/statuses", handler.GetStatuses)
		routerGroup.Get("/sla/compliance", handler.GetCompliance)
		routerGroup.Get("/{id}", handler.GetComplaintByID)
		routerGroup.Patch("/{id}", handler.UpdateComplaint)
		routerGroup.Delete("/{id}", handler.DeleteComplaint)
		routerGroup.Post("/{id}/updates", handler.AddComplaintUpdate)
		routerGroup.Get("/{id}/updates", handler.GetComplaintUpdates)
	})

	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/complaint-stats", handler.GetComplaintStats)
		routerGroup.Get("/technician-stats", handler.GetTechnicianStats)
	})
}

// CreateComplaint files a new maintenance complaint and starts its SLA clock.
// @Summary Create a complaint
// @Tags Complaint
// @Accept json
// @Produce json
// @Param request body dto.CreateComplaintRequest true "Create Complaint Request"
// @Success 201 {object} response.Data[dto.ComplaintResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/complaints [post]
// @Security BearerAuth
func (handler *Handler) CreateComplaint(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateComplaint")
	defer scope.End()

	req := dto.CreateComplaintRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create complaint")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Complaint " + res.ID + " created")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetComplaints lists complaints visible to the caller.
// @Summary List complaints
// @Tags Complaint
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param priority query string false "Filter by priority"
// @Param building_id query string false "Filter by building"
// @Param assigned_to_me query boolean false "Only complaints assigned to the caller"
// @Param created_by_me query boolean false "Only complaints reported by the caller"
// @Param is_overdue query boolean false "Filter by SLA breach"
// @Param search query string false "Search title and description"
// @Success 200 {object} response.Data[dto.GetComplaintsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/complaints [get]
// @Security BearerAuth
func (handler *Handler) GetComplaints(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComplaints")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, dto.Sortable)

	values := request.URL.Query()
	query := dto.ComplaintQuery{
		Status:     lifecycle.Status(values.Get(model.FieldStatus)),
		Category:   lifecycle.Category(values.Get(model.FieldCategory)),
		Priority:   lifecycle.Priority(values.Get(model.FieldPriority)),
		BuildingID: values.Get(model.FieldBuildingID),
		IsOverdue:  shared.ConvertStringToBool(values.Get(constant.QueryParamIsOverdue)),
		Search:     values.Get(constant.QueryParamSearch),
	}

	if assigned := shared.ConvertStringToBool(values.Get(constant.QueryParamAssignedToMe)); assigned != nil {
		query.AssignedToMe = *assigned
	}

	if created := shared.ConvertStringToBool(values.Get(constant.QueryParamCreatedByMe)); created != nil {
		query.CreatedByMe = *created
	}

	res, err := handler.service.GetAll(ctx, queryParams, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get complaints")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetComplaintByID returns one complaint with its SLA state computed now.
// @Summary Get a complaint
// @Tags Complaint
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Data[dto.ComplaintResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/complaints/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetComplaintByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComplaintByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get complaint")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateComplaint changes status, priority, assignment or details of a complaint.
// @Summary Update a complaint
// @Tags Complaint
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body dto.UpdateComplaintRequest true "Update Complaint Request"
// @Success 200 {object} response.Data[dto.ComplaintResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/complaints/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateComplaint(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateComplaint")
	defer scope.End()

	req := dto.UpdateComplaintRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update complaint")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Complaint " + res.ID + " updated to " + string(res.Status))

	response.WithJSON(writer, http.StatusOK, res)
}

// AddComplaintUpdate appends a timeline entry, optionally moving the status.
// @Summary Add a complaint update
// @Tags Complaint
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body dto.CreateComplaintUpdateRequest true "Complaint Update Request"
// @Success 201 {object} response.Data[dto.ComplaintUpdateResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/complaints/{id}/updates [post]
// @Security BearerAuth
func (handler *Handler) AddComplaintUpdate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddComplaintUpdate")
	defer scope.End()

	req := dto.CreateComplaintUpdateRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.AddUpdate(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add complaint update")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetComplaintUpdates returns the timeline, oldest first.
// @Summary Complaint timeline
// @Tags Complaint
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Data[[]dto.ComplaintUpdateResponse]
// @Failure 404 {object} response.Error
// @Router /v1/complaints/{id}/updates [get]
// @Security BearerAuth
func (handler *Handler) GetComplaintUpdates(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComplaintUpdates")
	defer scope.End()

	res, err := handler.service.Timeline(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get complaint timeline")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetCompliance reports the share of resolved complaints that met their deadline.
// @Summary SLA compliance
// @Tags Complaint
// @Produce json
// @Param building_id query string false "Restrict to one building"
// @Success 200 {object} response.Data[dto.ComplianceResponse]
// @Failure 403 {object} response.Error
// @Router /v1/complaints/sla/compliance [get]
// @Security BearerAuth
func (handler *Handler) GetCompliance(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCompliance")
	defer scope.End()

	res, err := handler.service.Compliance(ctx, request.URL.Query().Get(model.FieldBuildingID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sla compliance")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteComplaint removes a complaint and its timeline.
// @Summary Delete a complaint
// @Tags Complaint
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/complaints/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteComplaint(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteComplaint")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete complaint")

		response.WithError(writer, err)

		return
	}

	user, _ := shared.Actor(ctx)
	scope.AddEvent("Complaint deleted by user " + user)

	response.WithMessage(writer, http.StatusOK, "Complaint deleted successfully")
}

// GetComplaintStats breaks down complaints filed in the last days by category, status and priority.
// @Summary Complaint dashboard
// @Tags Dashboard
// @Produce json
// @Param building_id query string false "Restrict to one building"
// @Param days query int false "Reporting window in days, 7 to 365" default(30)
// @Success 200 {object} response.Data[dto.ComplaintStatsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/dashboard/complaint-stats [get]
// @Security BearerAuth
func (handler *Handler) GetComplaintStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComplaintStats")
	defer scope.End()

	query, err := statsQuery(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate stats query")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ComplaintStats(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get complaint stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetTechnicianStats reports assignment and completion counts per technician.
// @Summary Technician performance
// @Tags Dashboard
// @Produce json
// @Param building_id query string false "Restrict to one building"
// @Param days query int false "Reporting window in days, 7 to 365" default(30)
// @Success 200 {object} response.Data[dto.TechnicianStatsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/dashboard/technician-stats [get]
// @Security BearerAuth
func (handler *Handler) GetTechnicianStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTechnicianStats")
	defer scope.End()

	query, err := statsQuery(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate stats query")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.TechnicianStats(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get technician stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func statsQuery(request *http.Request) (dto.StatsQuery, error) {
	query, err := dto.StatsQueryFrom(request.URL.Query())
	if err != nil {
		return query, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&query); err != nil {
		return query, err // nolint:wrapcheck
	}

	return query, nil
}

// GetStatuses returns the status table with labels and colors.
// @Summary Complaint statuses
// @Tags Complaint
// @Produce json
// @Success 200 {object} response.Data[[]lifecycle.Presentation]
// @Router /v1/complaints/statuses [get]
func (handler *Handler) GetStatuses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatuses")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.Statuses(ctx))
}
