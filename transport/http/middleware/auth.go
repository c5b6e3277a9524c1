package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"slices"

	"fixmycondo/config"
	"fixmycondo/infras/jwt"
	"fixmycondo/infras/otel"
	"fixmycondo/permissions"
	"fixmycondo/shared/constant"
	"fixmycondo/shared/failure"
	"fixmycondo/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type skipAuthKey string

const skipAuth = skipAuthKey("skip")

var tokenMessages = []struct {
	err     error
	message string
}{
	{jwt.ErrExpiredToken, "Token has expired"},
	{jwt.ErrInvalidToken, "Invalid token"},
	{jwt.ErrInvalidClaim, "Invalid token claims"},
	{jwt.ErrRevokedToken, "Token has been revoked"},
}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// route resolves the chi pattern of the request and the permission entry configured for it.
func (m *authRoleImpl) route(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	if m.permission == nil {
		return path, permissions.Permission{}
	}

	return path, m.permission.FindPermissions(path, request.Method)
}

func deny(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()
	response.WithError(writer, err)
}

// Auth turns the bearer token into the acting user on the request context. Requests already
// authenticated by APIKey and routes marked skip pass through untouched.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		path, permission := m.route(request)

		if skip, _ := ctx.Value(skipAuth).(bool); skip || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			deny(writer, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			deny(writer, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
		if err != nil {
			message := "Token validation failed"

			for _, known := range tokenMessages {
				if errors.Is(err, known.err) {
					message = known.message

					break
				}
			}

			deny(writer, scope, failure.Unauthorized(message))

			return
		}

		if claims.UserID == "" || claims.Email == "" || !slices.Contains(constant.UserRoles, claims.Role) {
			log.Error().Str("userID", claims.UserID).Str("role", claims.Role).Msg("token carries incomplete claims")

			deny(writer, scope, failure.Unauthorized("Invalid token claims"))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC admits the request when the route lists the caller's role. Routes without a role list are
// open to any authenticated user.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		_, permission := m.route(request)

		if skip, _ := ctx.Value(skipAuth).(bool); skip || m.permission.Skip || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !permission.Allows(userRole) {
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey authenticates internal callers such as the building management system. They act as the
// system role and bypass token and role checks.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, skipAuth, true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.RoleSystem)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSystem)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
