package auth_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "fixmycondo/infras/otel/mocks"
	authMocks "fixmycondo/internal/domains/auth/mocks"
	"fixmycondo/internal/domains/auth/model/dto"
	userDto "fixmycondo/internal/domains/user/model/dto"
	"fixmycondo/internal/handlers/auth"
	"fixmycondo/shared/failure"
)

func newRouter(t *testing.T) (chi.Router, *authMocks.MockAuth) {
	t.Helper()

	svc := authMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router chi.Router, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &payload)

	return rec, payload
}

func TestAuthHandler_Register(t *testing.T) {
	router, svc := newRouter(t)

	rec, body := serve(router, http.MethodPost, "/auth/register", `{"email":"not-an-email","password":"longenough1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email address", body["error"])

	svc.EXPECT().
		Register(gomock.Any(), dto.RegisterRequest{Email: "new@example.com", Password: "longenough1"}).
		Return(nil)

	rec, body = serve(router, http.MethodPost, "/auth/register", `{"email":"new@example.com","password":"longenough1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User registered successfully", body["message"])

	svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(failure.Conflict("email already registered"))

	rec, _ = serve(router, http.MethodPost, "/auth/register", `{"email":"new@example.com","password":"longenough1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *authMocks.MockAuth)
		wantCode int
		wantBody string
	}{
		{
			name:     "missing password",
			body:     `{"email":"a@example.com"}`,
			setup:    func(*authMocks.MockAuth) {},
			wantCode: http.StatusBadRequest,
			wantBody: "password is required",
		},
		{
			name: "bad credentials",
			body: `{"email":"a@example.com","password":"x"}`,
			setup: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid email or password",
		},
		{
			name: "storage failure is not leaked",
			body: `{"email":"a@example.com","password":"x"}`,
			setup: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, errors.New("pq: connection refused"))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: http.StatusText(http.StatusInternalServerError),
		},
		{
			name: "tokens issued",
			body: `{"email":"a@example.com","password":"x"}`,
			setup: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "a@example.com", Password: "x"}).
					Return(dto.LoginResponse{AccessToken: "access", TokenType: "Bearer", Role: "resident"}, nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setup(svc)

			rec, body := serve(router, http.MethodPost, "/auth/login", tt.body)
			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, body["error"])

				return
			}

			data, ok := body["data"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "access", data["access_token"])
			assert.Equal(t, "resident", data["role"])
		})
	}
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Me(gomock.Any()).Return(userDto.UserResponse{ID: "u-1", Email: "me@example.com", Level: "technician", Active: true}, nil)

	rec, body := serve(router, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "me@example.com", data["email"])
	assert.NotContains(t, data, "password")

	svc.EXPECT().Logout(gomock.Any()).Return(failure.Unauthorized("authentication required"))

	rec, _ = serve(router, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	svc.EXPECT().Logout(gomock.Any()).Return(nil)

	rec, body = serve(router, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", body["message"])
}
