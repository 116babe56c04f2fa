// Package logging provides the production implementation of the shared
// Logger interface. Output is one JSON object per line via zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
)

// ZerologLogger adapts a zerolog.Logger to interfaces.Logger.
type ZerologLogger struct {
	log zerolog.Logger
}

var _ interfaces.Logger = (*ZerologLogger)(nil)

// New builds a logger writing to w at the given level. A nil writer means
// stderr; an unknown level falls back to info.
func New(w io.Writer, level string) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &ZerologLogger{log: zl}
}

func (z *ZerologLogger) Debug(msg string, fields ...interfaces.Field) {
	emit(z.log.Debug(), msg, fields)
}

func (z *ZerologLogger) Info(msg string, fields ...interfaces.Field) {
	emit(z.log.Info(), msg, fields)
}

func (z *ZerologLogger) Warn(msg string, fields ...interfaces.Field) {
	emit(z.log.Warn(), msg, fields)
}

func (z *ZerologLogger) Error(msg string, fields ...interfaces.Field) {
	emit(z.log.Error(), msg, fields)
}

// With returns a child logger whose fields are attached to every message.
func (z *ZerologLogger) With(fields ...interfaces.Field) interfaces.Logger {
	ctx := z.log.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{log: ctx.Logger()}
}

func emit(ev *zerolog.Event, msg string, fields []interfaces.Field) {
	for _, f := range fields {
		ev = ev.Interface(f.Key, f.Value)
	}
	ev.Msg(msg)
}
