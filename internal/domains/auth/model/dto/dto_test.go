package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fixmycondo/infras/jwt"
	"fixmycondo/internal/domains/auth/model/dto"
	"fixmycondo/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair, constant.RoleTechnician)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Equal(t, constant.RoleTechnician, response.Role)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	unit := "B-12-03"
	req := dto.RegisterRequest{Email: "resident@example.com", Password: "password123", UnitID: &unit}

	user := req.ToUserModel(constant.ContextGuest, "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, constant.RoleResident, user.Level)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, &unit, user.UnitID)
	assert.True(t, user.Active)
	assert.False(t, user.IsVerified)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}
