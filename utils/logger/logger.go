package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

// Init initializes a JSON logger on stdout with optional OTel export.
func Init(level string, enableOTel bool) *slog.Logger {
	return New(os.Stdout, parseLevel(level), enableOTel)
}

// New builds a logger writing JSON to w. Records always carry trace and
// request context; with enableOTel they are also exported through the
// global OTel logger provider.
func New(w io.Writer, level slog.Level, enableOTel bool) *slog.Logger {
	jsonHandler := NewTraceContextHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	var handler slog.Handler = jsonHandler
	if enableOTel {
		handler = NewMultiHandler(jsonHandler, NewOTelHandler(level))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OTelHandler forwards records to the global OTel logger provider.
// Group names become dotted key prefixes.
type OTelHandler struct {
	logger log.Logger
	level  slog.Level
	prefix string
	attrs  []log.KeyValue
}

// NewOTelHandler creates a handler bound to the global logger provider.
func NewOTelHandler(level slog.Level) *OTelHandler {
	return &OTelHandler{
		logger: global.GetLoggerProvider().Logger("pokedex-hub/slog"),
		level:  level,
	}
}

func (h *OTelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *OTelHandler) Handle(ctx context.Context, r slog.Record) error {
	var rec log.Record
	rec.SetTimestamp(r.Time)
	rec.SetObservedTimestamp(time.Now())
	rec.SetBody(log.StringValue(r.Message))
	rec.SetSeverity(otelSeverity(r.Level))
	rec.SetSeverityText(r.Level.String())

	// trace_id/span_id are attached by the SDK from ctx; request-scoped keys are not.
	for _, a := range contextAttrs(ctx) {
		rec.AddAttributes(toKeyValues("", a)...)
	}
	rec.AddAttributes(h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		rec.AddAttributes(toKeyValues(h.prefix, a)...)
		return true
	})

	h.logger.Emit(ctx, rec)
	return nil
}

func (h *OTelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		next.attrs = append(next.attrs, toKeyValues(h.prefix, a)...)
	}
	return &next
}

func (h *OTelHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func otelSeverity(level slog.Level) log.Severity {
	switch {
	case level >= slog.LevelError:
		return log.SeverityError
	case level >= slog.LevelWarn:
		return log.SeverityWarn
	case level >= slog.LevelInfo:
		return log.SeverityInfo
	default:
		return log.SeverityDebug
	}
}

// toKeyValues flattens a into OTel attributes. Nested groups are expanded
// with dotted keys; empty attributes are dropped.
func toKeyValues(prefix string, a slog.Attr) []log.KeyValue {
	v := a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return nil
	}
	key := prefix + a.Key

	switch v.Kind() {
	case slog.KindGroup:
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = key + "."
		}
		var kvs []log.KeyValue
		for _, ga := range v.Group() {
			kvs = append(kvs, toKeyValues(groupPrefix, ga)...)
		}
		return kvs
	case slog.KindString:
		return []log.KeyValue{log.String(key, v.String())}
	case slog.KindInt64:
		return []log.KeyValue{log.Int64(key, v.Int64())}
	case slog.KindUint64:
		return []log.KeyValue{log.Int64(key, int64(v.Uint64()))}
	case slog.KindFloat64:
		return []log.KeyValue{log.Float64(key, v.Float64())}
	case slog.KindBool:
		return []log.KeyValue{log.Bool(key, v.Bool())}
	case slog.KindDuration:
		return []log.KeyValue{log.Int64(key+"_ms", v.Duration().Milliseconds())}
	case slog.KindTime:
		return []log.KeyValue{log.String(key, v.Time().Format(time.RFC3339Nano))}
	default:
		return []log.KeyValue{log.String(key, v.String())}
	}
}

// MultiHandler fans each record out to every handler that accepts its level.
type MultiHandler []slog.Handler

func NewMultiHandler(handlers ...slog.Handler) MultiHandler {
	return MultiHandler(handlers)
}

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(m, func(h slog.Handler) bool {
		return h.Enabled(ctx, level)
	})
}

// Handle returns the first handler error after offering r to all handlers.
func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m MultiHandler) each(fn func(slog.Handler) slog.Handler) MultiHandler {
	next := make(MultiHandler, len(m))
	for i, h := range m {
		next[i] = fn(h)
	}
	return next
}
