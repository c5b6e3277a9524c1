package shared

import (
	"context"
	"encoding/json"
	"fixmycondo/shared/cache"
	"fixmycondo/shared/constant"
	"fixmycondo/shared/dto"
	"fixmycondo/shared/timezone"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// TransformFields maps the non-zero db-tagged fields of a patch struct to column values and stamps
// the modification columns. Pointer fields are dereferenced so a set pointer can carry a zero value.
func TransformFields(data any, username string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the prefix and parts with the cache key separator.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), constant.CacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key for list queries from the paging params and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key query")

		return BuildCacheKey(prefix, where)
	}

	return BuildCacheKey(prefix, strconv.FormatUint(xxhash.Sum64(payload), 16))
}

// InvalidateCaches removes every key stored under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.CacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

var (
	managementRoles = []string{constant.RoleSuperAdmin, constant.RoleBuildingAdmin, constant.RoleCommittee}
	fieldStaffRoles = []string{constant.RoleTechnician, constant.RoleVendor}
)

// IsManagement reports whether the role administers the building and its facilities.
func IsManagement(role string) bool {
	return slices.Contains(managementRoles, role)
}

// IsFieldStaff reports whether the role carries out repair work.
func IsFieldStaff(role string) bool {
	return slices.Contains(fieldStaffRoles, role)
}

// Actor returns the user id and role stored in ctx by the auth middleware.
func Actor(ctx context.Context) (user, role string) {
	user, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return user, role
}
