package dto

import (
	"fixmycondo/internal/domains/user/model"
	"fixmycondo/shared"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	gModel "fixmycondo/shared/model"
	"fixmycondo/shared/timezone"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var Sortable = gDto.NewSortColumns(model.TableName,
	constant.FieldCreatedAt, model.FieldEmail, model.FieldFullName, model.FieldLevel, model.FieldLastLogin)

type CreateUserRequest struct {
	Email      string  `json:"email"                 validate:"required,email"`
	Password   string  `json:"password"              validate:"required,min=8"`
	Level      string  `json:"level"                 validate:"omitempty,oneof=super_admin building_admin committee resident technician vendor"`
	FullName   *string `json:"full_name,omitempty"   validate:"omitempty,min=2,max=100"`
	Phone      *string `json:"phone,omitempty"       validate:"omitempty,max=20"`
	BuildingID *string `json:"building_id,omitempty" validate:"omitempty,max=64"`
	UnitID     *string `json:"unit_id,omitempty"     validate:"omitempty,max=64"`
	IsVerified *bool   `json:"is_verified,omitempty"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	level := r.Level
	if level == constant.Empty {
		level = constant.RoleResident
	}

	isVerified := false
	if r.IsVerified != nil {
		isVerified = *r.IsVerified
	}

	return model.User{
		ID:         uuid.NewString(),
		Email:      r.Email,
		Password:   hashedPassword,
		Level:      level,
		FullName:   r.FullName,
		Phone:      r.Phone,
		BuildingID: r.BuildingID,
		UnitID:     r.UnitID,
		IsVerified: isVerified,
		Active:     true,
		Metadata:   gModel.NewMetadata(username, timezone.Now()),
	}
}

type UpdateUserRequest struct {
	Level      *string `db:"level"       json:"level,omitempty"       validate:"omitempty,oneof=super_admin building_admin committee resident technician vendor"`
	FullName   *string `db:"full_name"   json:"full_name,omitempty"   validate:"omitempty,min=2,max=100"`
	Phone      *string `db:"phone"       json:"phone,omitempty"       validate:"omitempty,max=20"`
	BuildingID *string `db:"building_id" json:"building_id,omitempty" validate:"omitempty,max=64"`
	UnitID     *string `db:"unit_id"     json:"unit_id,omitempty"     validate:"omitempty,max=64"`
	IsVerified *bool   `db:"is_verified" json:"is_verified,omitempty"`
	Active     *bool   `db:"active"      json:"active,omitempty"`
}

// UserQuery carries the listing filters of GET /users.
type UserQuery struct {
	Level      string
	BuildingID string
	Active     *bool
	Search     string
}

// UserQueryFrom reads the listing filters from a request query string. Unparseable booleans are ignored.
func UserQueryFrom(values url.Values) UserQuery {
	return UserQuery{
		Level:      strings.TrimSpace(values.Get(model.FieldLevel)),
		BuildingID: strings.TrimSpace(values.Get(model.FieldBuildingID)),
		Active:     shared.ConvertStringToBool(values.Get(model.FieldActive)),
		Search:     strings.TrimSpace(values.Get(constant.QueryParamSearch)),
	}
}

type UserResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Level      string     `json:"level"`
	FullName   *string    `json:"full_name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	BuildingID *string    `json:"building_id,omitempty"`
	UnitID     *string    `json:"unit_id,omitempty"`
	IsVerified bool       `json:"is_verified"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	Active     bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.BuildingID = model.BuildingID
	r.UnitID = model.UnitID
	r.IsVerified = model.IsVerified
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
	gDto.Pagination
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.Pagination = gDto.NewPagination(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
