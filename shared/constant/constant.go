package constant

import (
	"time"
)

const (
	ContextGuest = "guest"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleSuperAdmin    = "super_admin"
	RoleBuildingAdmin = "building_admin"
	RoleCommittee     = "committee"
	RoleResident      = "resident"
	RoleTechnician    = "technician"
	RoleVendor        = "vendor"
	RoleSystem        = "system"
)

// UserRoles are the roles an account can hold. RoleSystem is reserved for API key callers.
var UserRoles = []string{RoleSuperAdmin, RoleBuildingAdmin, RoleCommittee, RoleResident, RoleTechnician, RoleVendor}

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID = "id"
)

const (
	QueryParamMyBookings   = "my_bookings"
	QueryParamUpcoming     = "upcoming"
	QueryParamAssignedToMe = "assigned_to_me"
	QueryParamCreatedByMe  = "created_by_me"
	QueryParamIsOverdue    = "is_overdue"
	QueryParamSearch       = "search"
	QueryParamDays         = "days"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeFkViolation        = "23503"
	PqErrorCodeExclusionViolation = "23P01"
	PqErrorCodeSerialization      = "40001"
	PqErrorCodeDeadlock           = "40P01"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"

	EventComplaintCreated       = "complaint.created"
	EventComplaintStatusChanged = "complaint.status_changed"
	EventComplaintSLABreached   = "complaint.sla_breached"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = "2006-01-02"
)

const (
	MinutesToSeconds  = 60
	CacheKeySeparator = ":"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"

	OtelJobScopeName = "job"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
