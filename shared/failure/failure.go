package failure

import (
	"errors"
	"maps"
	"net/http"
)

// Failure is an error that knows the HTTP status it should be answered with. Details carries
// machine readable context such as the transitions still allowed or the booking that clashed.
type Failure struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound takes the full message, e.g. "complaint not found".
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

// Conflict is used for illegal status changes, taken slots and stale versions.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// UnprocessableEntity is used for well-formed requests that break a booking rule.
func UnprocessableEntity(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, msg)
}

// WithDetail returns a copy of the Failure in err with key set. Other errors are returned as is.
func WithDetail(err error, key string, value any) error {
	var fail *Failure
	if !errors.As(err, &fail) {
		return err
	}

	details := maps.Clone(fail.Details)
	if details == nil {
		details = map[string]any{}
	}

	details[key] = value

	return &Failure{Code: fail.Code, Message: fail.Message, Details: details}
}

// GetCode returns the status carried by err, 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetDetails returns the details carried by err, nil when there are none.
func GetDetails(err error) map[string]any {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Details
	}

	return nil
}
