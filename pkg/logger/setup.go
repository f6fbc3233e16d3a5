package logger

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raywall/ddbprobe/pkg/config"
	"github.com/rs/zerolog"
)

// Configure inicializa o logger a partir da configuração.
//
// O relatório das probes vai para stdout; por isso o logger recebe o writer
// explicitamente (normalmente os.Stderr).
func Configure(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: warn)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	var output io.Writer = out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}
