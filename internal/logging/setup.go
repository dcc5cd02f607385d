package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/config"
)

// ParseLevel maps LOG_LEVEL to a zerolog level, falling back to info
func ParseLevel(value string) (zerolog.Level, bool) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return level, true
}

// Setup installs the global console logger at the configured level and,
// when enabled, tees every line into the embedded Logdy viewer.
func Setup(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var out io.Writer = console
	if cfg.LogdyEnabled {
		ld, _, err := StartLogdy(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to start Logdy UI, console only")
		} else {
			out = zerolog.MultiLevelWriter(console, ld)
		}
	}
	log.Logger = log.Output(out)

	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid log level, using info")
	}
	zerolog.SetGlobalLevel(level)
}
