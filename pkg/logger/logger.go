package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config define cómo escribe el logger del servicio.
type Config struct {
	Env     string    // "development" escribe en consola con colores; cualquier otro valor, JSON por línea
	Level   string    // nivel mínimo: trace, debug, info, warn, error (info si no se reconoce)
	Service string    // se agrega como campo "service" en cada línea si no está vacío
	Output  io.Writer // destino; os.Stdout si es nil
}

// Logger es el logger que reciben casos de uso, handlers y adaptadores.
// Las líneas llevan timestamp y, si se configuró, el nombre del servicio.
type Logger struct {
	zl zerolog.Logger
}

// New arma el logger y lo instala también como logger global de zerolog.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Output != nil {
		w = cfg.Output
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w}
	}

	zc := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		zc = zc.Str("service", cfg.Service)
	}
	zl := zc.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Nop descarta todo. Lo usan los tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un contexto para derivar un sublogger con campos fijos (por ejemplo op_id).
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el zerolog.Logger subyacente.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
