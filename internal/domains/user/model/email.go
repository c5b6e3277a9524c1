package model

import (
	gDto "fixmycondo/shared/dto"
	"strings"
)

// NormalizeEmail is applied before every lookup and insert so addresses are unique case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: FieldEmail, Operator: gDto.FilterOperatorEq, Value: NormalizeEmail(email), Table: TableName},
		},
	}
}
