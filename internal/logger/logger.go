package logger

import (
	"io"
	"os"

	"linewar-tracker/internal/config"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New writes to stderr so stdout stays free for command output.
func New() zerolog.Logger {
	return NewWithWriter(os.Stderr)
}

func NewWithWriter(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()

	logger = logger.Level(zerolog.DebugLevel)

	return logger
}

// ParseLevel maps a configured level name to a zerolog level. Unknown names fall back to info.
func ParseLevel(name string) (zerolog.Level, bool) {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return level, true
}

// ApplyLevel sets the process-wide level from configuration.
func ApplyLevel(cfg *config.Config, logger zerolog.Logger) {
	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		logger.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, using info")
	}
	zerolog.SetGlobalLevel(level)
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(ApplyLevel),
)
