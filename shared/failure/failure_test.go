package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmycondo/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("title is required")), wantCode: http.StatusBadRequest, wantMsg: "title is required"},
		{name: "bad request from string", err: failure.BadRequestFromString("empty update"), wantCode: http.StatusBadRequest, wantMsg: "empty update"},
		{name: "unauthorized", err: failure.Unauthorized("token revoked"), wantCode: http.StatusUnauthorized, wantMsg: "token revoked"},
		{name: "forbidden", err: failure.Forbidden("not your booking"), wantCode: http.StatusForbidden, wantMsg: "not your booking"},
		{name: "not found", err: failure.NotFound("complaint not found"), wantCode: http.StatusNotFound, wantMsg: "complaint not found"},
		{name: "conflict", err: failure.Conflict("slot taken"), wantCode: http.StatusConflict, wantMsg: "slot taken"},
		{name: "unprocessable", err: failure.UnprocessableEntity("too long"), wantCode: http.StatusUnprocessableEntity, wantMsg: "too long"},
		{name: "predefined forbidden", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to create booking: %w", failure.Conflict("slot taken"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("database error")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestWithDetail(t *testing.T) {
	base := failure.Conflict("cannot change status from closed to submitted")

	err := failure.WithDetail(base, "from", "closed")
	err = failure.WithDetail(err, "allowed_transitions", []string{})

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, map[string]any{"from": "closed", "allowed_transitions": []string{}}, failure.GetDetails(err))
	assert.Nil(t, failure.GetDetails(base))

	plain := errors.New("database error")
	assert.Same(t, plain, failure.WithDetail(plain, "from", "closed"))
	assert.Nil(t, failure.GetDetails(plain))
}
