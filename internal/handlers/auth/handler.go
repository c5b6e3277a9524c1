package auth

import (
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/auth/model/dto"
	"fixmycondo/internal/domains/auth/service"
	userDto "fixmycondo/internal/domains/user/model/dto"
	"fixmycondo/shared/constant"
	"fixmycondo/shared/validator"
	"fixmycondo/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the public sign-up and token endpoints next to the authenticated session ones.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", handler.Register)
		auth.Post("/login", handler.Login)
		auth.Post("/refresh-token", handler.RefreshToken)

		auth.Post("/change-password", handler.ChangePassword)
		auth.Post("/logout", handler.Logout)
		auth.Get("/me", handler.Me)
	})
}

// Register is the resident self sign-up. The account always starts at the resident level.
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Sign-up"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("rejected registration")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("registration failed")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "User registered successfully")
}

// Login exchanges credentials for an access and refresh token pair.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error "Account deactivated"
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("rejected login")

		response.WithError(w, err)

		return
	}

	tokens, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("login failed")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("user.level", tokens.Role)

	response.WithJSON(w, http.StatusOK, tokens)
}

// RefreshToken rotates a refresh token. The presented token is revoked.
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("rejected token refresh")

		response.WithError(w, err)

		return
	}

	tokens, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("token refresh failed")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tokens)
}

// ChangePassword replaces the caller's password and signs out every existing session.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("rejected password change")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("password change failed")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("password changed")

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}

// Me returns the profile behind the bearer token.
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[userDto.UserResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/auth/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	var (
		res userDto.UserResponse
		err error
	)

	if res, err = handler.service.Me(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load current user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Logout revokes every token of the caller, on all devices.
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	if err := handler.service.Logout(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged out")

	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}
