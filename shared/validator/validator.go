package validator

import (
	"encoding/json"
	"errors"
	"fixmycondo/shared/failure"
	"fmt"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const detailFields = "fields"

var validate = newValidate()

type enumerable interface {
	Valid() bool
}

func enumValid(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(enumerable)

	return ok && value.Valid()
}

// decimalMin compares a decimal.Decimal, or a pointer to one, against the tag param.
func decimalMin(field val.FieldLevel) bool {
	minValue, err := decimal.NewFromString(field.Param())
	if err != nil {
		return false
	}

	switch value := field.Field().Interface().(type) {
	case decimal.Decimal:
		return value.GreaterThanOrEqual(minValue)
	case *decimal.Decimal:
		return value == nil || value.GreaterThanOrEqual(minValue)
	default:
		return false
	}
}

// jsonName reports fields by the name clients send them under.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	if err := v.RegisterValidation("enum", enumValid); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("decimalmin", decimalMin, true); err != nil {
		panic(err)
	}

	return v
}

// Validate decodes one JSON document from r into data and validates it.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is empty") //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateStruct answers with the first broken rule as message and every broken field under
// the "fields" detail.
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		if _, seen := fields[fieldPath(fieldErr)]; !seen {
			fields[fieldPath(fieldErr)] = describe(fieldErr)
		}
	}

	return failure.WithDetail(failure.BadRequestFromString(describe(fieldErrors[0])), detailFields, fields) //nolint:wrapcheck
}

// fieldPath drops the root struct name from the namespace, e.g. "images[0]".
func fieldPath(fieldErr val.FieldError) string {
	_, path, found := strings.Cut(fieldErr.Namespace(), ".")
	if !found {
		return fieldErr.Field()
	}

	return path
}
