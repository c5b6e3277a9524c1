package user

import (
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/user/model/dto"
	"fixmycondo/internal/domains/user/service"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/validator"
	"fixmycondo/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler exposes account administration. Self sign-up lives under /auth.
type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(users chi.Router) {
		users.Post("/", handler.CreateUser)
		users.Get("/", handler.GetUsers)
		users.Get("/{id}", handler.GetUserByID)
		users.Patch("/{id}", handler.UpdateUser)
		users.Delete("/{id}", handler.DeleteUser)
	})
}

// CreateUser opens a staff or resident account on behalf of management.
// @Summary Create an account
// @Description Only a super admin may create another super admin.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	var req dto.CreateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("rejected create user request")

		response.WithError(w, err)

		return
	}

	created, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("level", req.Level).Msg("failed to create user")

		response.WithError(w, err)

		return
	}

	scope.SetAttributes(map[string]any{"user.id": created.ID, "user.level": created.Level})

	response.WithJSON(w, http.StatusCreated, created)
}

// GetUsers lists accounts.
// @Summary List accounts
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Paging and sort"
// @Param level query string false "Role"
// @Param building_id query string false "Building"
// @Param active query boolean false "Active accounts only, or inactive only"
// @Param search query string false "Matches email or full name"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 400 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, dto.Sortable)

	users, err := handler.service.GetAll(ctx, params, dto.UserQueryFrom(r.URL.Query()))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list users")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("users.total", users.TotalData)

	response.WithJSON(w, http.StatusOK, users)
}

// GetUserByID
// @Summary Get an account
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	user, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUser patches an account. Omitted fields keep their value.
// @Summary Update an account
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Changed fields"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("user_id", id).Msg("rejected update user request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", id).Msg("failed to update user")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated successfully")
}

// DeleteUser removes an account. Callers cannot delete themselves.
// @Summary Delete an account
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("user_id", id).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("user deleted")

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}
