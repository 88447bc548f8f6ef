// Package monitor sets up the companion's structured logging environment.
// Ported from the teacher's pkg/monitor/logger.go CustomHandler, trimmed to
// drop the CLI banner/monitor broadcast machinery the companion has no use
// for (there is no chat transcript UI here — see DESIGN.md).
package monitor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// turnIDContextKey is the context key under which a turn's correlation ID
// is stored so the log handler can print it alongside every line emitted
// during that turn's processing.
type turnIDContextKey struct{}

// TurnIDContextKey is exported so components can attach a turn ID to a
// context with context.WithValue(ctx, monitor.TurnIDContextKey, turnID).
var TurnIDContextKey = turnIDContextKey{}

// handler implements slog.Handler with a compact
// "[time] [level] [turn_id] message key=value ..." line format.
type handler struct {
	w     io.Writer
	opts  slog.HandlerOptions
	attrs []slog.Attr
}

func newHandler(w io.Writer, opts slog.HandlerOptions) *handler {
	return &handler{w: w, opts: opts}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	buf := bytes.NewBuffer(nil)

	turnID := ""
	if ctx != nil {
		if v, ok := ctx.Value(TurnIDContextKey).(string); ok {
			turnID = v
		}
	}

	fmt.Fprintf(buf, "[%s] [%s]", r.Time.Format("2006-01-02 15:04:05"), r.Level)
	if turnID != "" {
		fmt.Fprintf(buf, " [%s]", turnID)
	}
	fmt.Fprintf(buf, " %s", r.Message)

	for _, a := range h.attrs {
		h.appendAttr(buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(buf, a)
		return true
	})

	buf.WriteString("\n")
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *handler) appendAttr(buf *bytes.Buffer, a slog.Attr) {
	buf.WriteString(" ")
	buf.WriteString(a.Key)
	buf.WriteString("=")

	val := a.Value.Resolve()
	switch val.Kind() {
	case slog.KindString:
		fmt.Fprintf(buf, "%q", val.String())
	case slog.KindTime:
		buf.WriteString(val.Time().Format(time.RFC3339))
	default:
		fmt.Fprintf(buf, "%v", val.Any())
	}
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{w: h.w, opts: h.opts, attrs: append(h.attrs, attrs...)}
}

func (h *handler) WithGroup(_ string) slog.Handler {
	return h
}

// Setup installs the companion's global slog logger at the given level
// ("debug", "info", "warn", "error"; defaults to info on an unrecognized
// value).
func Setup(levelStr string) {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(newHandler(os.Stderr, slog.HandlerOptions{Level: level})))
}
