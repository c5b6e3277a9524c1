package dto

import (
	"fixmycondo/infras/jwt"
	userModel "fixmycondo/internal/domains/user/model"
	"fixmycondo/shared/constant"
	gModel "fixmycondo/shared/model"
	"fixmycondo/shared/timezone"

	"github.com/google/uuid"
)

// RegisterRequest is the self sign-up of a resident. Staff accounts are created through /users.
type RegisterRequest struct {
	Email      string  `json:"email"                 validate:"required,email"`
	Password   string  `json:"password"              validate:"required,min=8"`
	FullName   *string `json:"full_name,omitempty"   validate:"omitempty,min=2,max=100"`
	Phone      *string `json:"phone,omitempty"       validate:"omitempty,max=20"`
	BuildingID *string `json:"building_id,omitempty" validate:"omitempty,max=64"`
	UnitID     *string `json:"unit_id,omitempty"     validate:"omitempty,max=64"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		Email:      r.Email,
		Password:   hashedPassword,
		Level:      constant.RoleResident,
		FullName:   r.FullName,
		Phone:      r.Phone,
		BuildingID: r.BuildingID,
		UnitID:     r.UnitID,
		IsVerified: false,
		Active:     true,
		Metadata:   gModel.NewMetadata(username, timezone.Now()),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair, role string) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
	l.Role = role
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
