package model

import (
	"fixmycondo/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldLevel      = "level"
	FieldFullName   = "full_name"
	FieldPhone      = "phone"
	FieldBuildingID = "building_id"
	FieldUnitID     = "unit_id"
	FieldIsVerified = "is_verified"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"
)

// User is an account. Level holds the role the RBAC middleware and the services check.
type User struct {
	ID         string     `db:"id"`
	Email      string     `db:"email"`
	Password   string     `db:"password"`
	Level      string     `db:"level"`
	FullName   *string    `db:"full_name"`
	Phone      *string    `db:"phone"`
	BuildingID *string    `db:"building_id"`
	UnitID     *string    `db:"unit_id"`
	IsVerified bool       `db:"is_verified"`
	LastLogin  *time.Time `db:"last_login"`
	Active     bool       `db:"active"`
	model.Metadata
}
