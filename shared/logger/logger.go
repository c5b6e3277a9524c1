package logger

import (
	"fixmycondo/config"
	"fixmycondo/shared/constant"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const defaultLevel = zerolog.InfoLevel

// Init replaces the global logger. Development gets human readable console output,
// every other environment JSON lines tagged with the service name.
func Init(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	log.Logger = New(os.Stdout, cfg)
	zerolog.SetGlobalLevel(Level(cfg.Server.LogLevel))

	log.Debug().Str("level", zerolog.GlobalLevel().String()).Str("env", cfg.Server.Env).Msg("Logger initialized")
}

func New(out io.Writer, cfg *config.Config) zerolog.Logger {
	if cfg.Server.Env == "" || cfg.Server.Env == constant.ServerEnvDevelopment {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).With().Timestamp().Str("service", cfg.App.Name).Logger()
}

// Level parses raw and falls back to info when it is empty or unknown.
func Level(raw string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil || level == zerolog.NoLevel {
		return defaultLevel
	}

	return level
}

// ErrorWithStack logs err at error level with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Stack().Err(errors.WithStack(err)).Send()
}
