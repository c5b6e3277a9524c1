package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"fixmycondo/shared/constant"
	"fixmycondo/shared/failure"
	"fixmycondo/shared/logger"

	"github.com/rs/zerolog/log"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error   *string        `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError answers with the status and details of a failure.Failure. Any other error is an
// infrastructure fault: it is logged and answered with a generic 500 so storage errors never leak.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		log.Error().Err(err).Msg("unhandled error")

		msg := http.StatusText(http.StatusInternalServerError)
		response(writer, http.StatusInternalServerError, Error{Error: &msg})

		return
	}

	msg := fail.Message
	response(writer, fail.Code, Error{Error: &msg, Details: fail.Details})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		code = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
