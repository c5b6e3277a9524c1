package validator

import (
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"required_if": "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be at least {param}",
	"max":         "{field} must be at most {param}",
	"oneof":       "{field} must be one of {param}",
	"email":       "{field} must be a valid email address",
	"url":         "{field} must be a valid URL",
	"uuid":        "{field} must be a valid UUID",
	"datetime":    "{field} must match the layout {param}",
	"enum":        "{field} has an unknown value",
	"decimalmin":  "{field} must be greater than or equal to {param}",
	"gtefield":    "{field} must not be before {param}",
	"nefield":     "{field} must differ from {param}",
}

func describe(fieldErr val.FieldError) string {
	tmpl, ok := messages[fieldErr.Tag()]
	if !ok {
		return fieldErr.Field() + " failed the " + fieldErr.Tag() + " rule"
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(tmpl)
}
