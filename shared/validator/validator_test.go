package validator_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmycondo/shared/failure"
	"fixmycondo/shared/validator"
)

type severity string

func (s severity) Valid() bool {
	return s == "low" || s == "urgent"
}

type ticket struct {
	Title    string           `json:"title"     validate:"required,min=3"`
	Email    string           `json:"email"     validate:"omitempty,email"`
	Severity severity         `json:"severity"  validate:"omitempty,enum"`
	Fee      decimal.Decimal  `json:"fee"       validate:"decimalmin=0"`
	Deposit  *decimal.Decimal `json:"deposit"   validate:"omitempty,decimalmin=10.5"`
	VisitAt  string           `json:"visit_at"  validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Images   []string         `json:"images"    validate:"omitempty,dive,url"`
	Internal string           `json:"-"         validate:"omitempty,max=1"`
}

func fieldDetails(t *testing.T, err error) map[string]string {
	t.Helper()

	fields, ok := failure.GetDetails(err)["fields"].(map[string]string)
	require.True(t, ok, "missing fields detail in %v", err)

	return fields
}

func TestValidateStruct(t *testing.T) {
	ten, eleven := decimal.NewFromInt(10), decimal.NewFromInt(11)

	tests := []struct {
		name      string
		data      ticket
		wantMsg   string
		wantField string
	}{
		{name: "valid", data: ticket{Title: "Leaking pipe", Severity: "urgent", Deposit: &eleven}},
		{name: "required", data: ticket{}, wantMsg: "title is required", wantField: "title"},
		{name: "too short", data: ticket{Title: "ab"}, wantMsg: "title must be at least 3", wantField: "title"},
		{name: "email", data: ticket{Title: "Lift", Email: "nope"}, wantMsg: "email must be a valid email address", wantField: "email"},
		{name: "unknown enum", data: ticket{Title: "Lift", Severity: "medium"}, wantMsg: "severity has an unknown value", wantField: "severity"},
		{name: "negative fee", data: ticket{Title: "Lift", Fee: decimal.NewFromInt(-1)}, wantMsg: "fee must be greater than or equal to 0", wantField: "fee"},
		{name: "pointer below minimum", data: ticket{Title: "Lift", Deposit: &ten}, wantMsg: "deposit must be greater than or equal to 10.5", wantField: "deposit"},
		{name: "bad datetime", data: ticket{Title: "Lift", VisitAt: "tomorrow"}, wantField: "visit_at"},
		{name: "dive", data: ticket{Title: "Lift", Images: []string{"https://cdn.example.com/a.jpg", "a.jpg"}}, wantMsg: "images[1] must be a valid URL", wantField: "images[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}

			assert.Contains(t, fieldDetails(t, err), tt.wantField)
		})
	}
}

func TestValidateStruct_ReportsEveryField(t *testing.T) {
	err := validator.ValidateStruct(&ticket{Email: "nope", Severity: "medium"})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"title":    "title is required",
		"email":    "email must be a valid email address",
		"severity": "severity has an unknown value",
	}, fieldDetails(t, err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "valid", body: `{"title":"Broken gate","fee":"12.50"}`},
		{name: "rule broken", body: `{"title":"x"}`, wantMsg: "title must be at least 3"},
		{name: "malformed", body: `{"title":}`, wantMsg: "failed to decode request body"},
		{name: "wrong type", body: `{"title":5}`, wantMsg: "failed to decode request body"},
		{name: "empty body", body: ``, wantMsg: "request body is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data ticket

			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, "Broken gate", data.Title)
				assert.True(t, data.Fee.Equal(decimal.RequireFromString("12.5")))

				return
			}

			require.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
