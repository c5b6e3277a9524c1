package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmycondo/config"
	"fixmycondo/shared/logger"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
	}{
		{raw: "trace", want: zerolog.TraceLevel},
		{raw: "debug", want: zerolog.DebugLevel},
		{raw: " WARN ", want: zerolog.WarnLevel},
		{raw: "error", want: zerolog.ErrorLevel},
		{raw: "disabled", want: zerolog.Disabled},
		{raw: "", want: zerolog.InfoLevel},
		{raw: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(tt.raw))
		})
	}
}

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "fixmycondo"
	cfg.Server.Env = "production"

	var buf bytes.Buffer

	l := logger.New(&buf, cfg)
	l.Info().Str("complaintID", "c-1").Msg("escalated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fixmycondo", line["service"])
	assert.Equal(t, "c-1", line["complaintID"])
	assert.Equal(t, "escalated", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_DevelopmentIsConsole(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = "development"

	var buf bytes.Buffer

	l := logger.New(&buf, cfg)
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestInit(t *testing.T) {
	original, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})

	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"

	logger.Init(cfg)

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	original, marshaler := log.Logger, zerolog.ErrorStackMarshaler
	t.Cleanup(func() {
		log.Logger = original
		zerolog.ErrorStackMarshaler = marshaler
	})

	var buf bytes.Buffer

	log.Logger = zerolog.New(&buf)
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger.ErrorWithStack(errors.New("insert failed"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "insert failed", line["error"])
	assert.Equal(t, "error", line["level"])
	assert.NotEmpty(t, line["stack"])
}
