package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

type logFormat int

const (
	formatJSON logFormat = iota
	formatKV
)

// defaultKeyOrder pins the leading keys of every log line so lines stay
// grep-able regardless of call-site attribute order.
var defaultKeyOrder = []string{"ts", "level", "component", "event", "status", "rid"}

type handlerConfig struct {
	level    slog.Leveler
	writer   io.Writer
	format   logFormat
	keyOrder []string
}

// syncWriter serializes writes from concurrent handlers.
type syncWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func newSyncWriter(out io.Writer) *syncWriter {
	return &syncWriter{out: out}
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

type structuredHandler struct {
	cfg   handlerConfig
	attrs []slog.Attr
}

func newStructuredHandler(cfg handlerConfig) *structuredHandler {
	if cfg.writer == nil {
		cfg.writer = io.Discard
	}
	if len(cfg.keyOrder) == 0 {
		cfg.keyOrder = append([]string(nil), defaultKeyOrder...)
	}
	return &structuredHandler{cfg: cfg}
}

func (h *structuredHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.cfg.level != nil {
		minLevel = h.cfg.level.Level()
	}
	return level >= minLevel
}

func (h *structuredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *structuredHandler) WithGroup(name string) slog.Handler {
	// Groups are flattened; this logger relies on a flat key schema.
	return h
}

func (h *structuredHandler) Handle(ctx context.Context, rec slog.Record) error {
	fields := make(map[string]slog.Value, rec.NumAttrs()+len(h.attrs)+4)
	var order []string

	add := func(a slog.Attr) {
		if a.Key == "" {
			return
		}
		if _, seen := fields[a.Key]; !seen {
			order = append(order, a.Key)
		}
		fields[a.Key] = a.Value.Resolve()
	}

	add(slog.String("ts", rec.Time.UTC().Format(time.RFC3339Nano)))
	add(slog.String("level", rec.Level.String()))
	for _, a := range h.attrs {
		add(a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})
	if rec.Message != "" {
		if _, ok := fields["event"]; !ok {
			add(slog.String("event", rec.Message))
		}
	}
	if rid := RIDFrom(ctx); rid != "" {
		if _, ok := fields["rid"]; !ok {
			add(slog.String("rid", rid))
		}
	}
	if handler := HandlerFrom(ctx); handler != "" {
		if _, ok := fields["handler"]; !ok {
			add(slog.String("handler", handler))
		}
	}

	ordered := orderKeys(order, h.cfg.keyOrder)

	var line []byte
	switch h.cfg.format {
	case formatKV:
		line = renderKV(ordered, fields)
	default:
		line = renderJSON(ordered, fields)
	}
	line = append(line, '\n')
	_, err := h.cfg.writer.Write(line)
	return err
}

// orderKeys places pinned keys first (in pin order) and keeps insertion order
// for everything else.
func orderKeys(insertion, pinned []string) []string {
	out := make([]string, 0, len(insertion))
	seen := make(map[string]struct{}, len(insertion))
	present := make(map[string]struct{}, len(insertion))
	for _, k := range insertion {
		present[k] = struct{}{}
	}
	for _, k := range pinned {
		if _, ok := present[k]; ok {
			out = append(out, k)
			seen[k] = struct{}{}
		}
	}
	for _, k := range insertion {
		if _, ok := seen[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

func renderKV(keys []string, fields map[string]slog.Value) []byte {
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		v := valueString(fields[k])
		if k == "rid" {
			v = CompactRID(v)
		}
		b.WriteString(k)
		b.WriteByte('=')
		if strings.ContainsAny(v, " \t\"") {
			b.WriteString(strconv.Quote(v))
		} else {
			b.WriteString(v)
		}
	}
	return []byte(b.String())
}

func renderJSON(keys []string, fields map[string]slog.Value) []byte {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(k)
		b.Write(keyJSON)
		b.WriteByte(':')
		b.Write(valueJSON(fields[k]))
	}
	b.WriteByte('}')
	return []byte(b.String())
}

func valueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v.Any())
	}
}

func valueJSON(v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindInt64:
		return []byte(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return []byte(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return []byte(strconv.FormatFloat(v.Float64(), 'f', -1, 64))
	case slog.KindBool:
		return []byte(strconv.FormatBool(v.Bool()))
	default:
		out, err := json.Marshal(valueString(v))
		if err != nil {
			return []byte(`"?"`)
		}
		return out
	}
}
