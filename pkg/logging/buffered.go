package logging

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// BufferedLogHandler is a slog.Handler that captures records in memory so
// tests can inspect the debug output a run produced.
//
//	handler := logging.NewBufferedLogHandler(nil)
//	logging.SetLogger(slog.New(handler))
//	// ... exercise the code under test ...
//	if !handler.Contains("outline cycle") {
//		t.Error("expected a cycle warning")
//	}
type BufferedLogHandler struct {
	out    *logBuffer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewBufferedLogHandler returns a handler with an empty buffer. Pass nil
// opts to capture all levels, or set opts.Level to filter.
func NewBufferedLogHandler(opts *slog.HandlerOptions) *BufferedLogHandler {
	h := &BufferedLogHandler{out: &logBuffer{}}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler.
func (h *BufferedLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Records are written as single text lines
// of the form "LEVEL message key=value ...".
func (h *BufferedLogHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	line.WriteString(r.Level.String())
	line.WriteByte(' ')
	line.WriteString(r.Message)

	// Stored attrs were qualified when WithAttrs captured them
	for _, attr := range h.attrs {
		writeAttr(&line, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&line, h.qualify(attr))
		return true
	})

	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	h.out.buf.WriteString(line.String())
	h.out.buf.WriteByte('\n')
	return nil
}

func writeAttr(line *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(line, " %s=%v", attr.Key, attr.Value)
}

// qualify prefixes an attr key with the open group names
func (h *BufferedLogHandler) qualify(attr slog.Attr) slog.Attr {
	if len(h.groups) == 0 || attr.Equal(slog.Attr{}) {
		return attr
	}
	attr.Key = strings.Join(h.groups, ".") + "." + attr.Key
	return attr
}

// WithAttrs implements slog.Handler. The returned handler shares this
// handler's buffer.
func (h *BufferedLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(attr))
	}
	return &clone
}

// WithGroup implements slog.Handler. The returned handler shares this
// handler's buffer.
func (h *BufferedLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// String returns everything captured so far.
func (h *BufferedLogHandler) String() string {
	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	return h.out.buf.String()
}

// Contains reports whether the captured output contains s.
func (h *BufferedLogHandler) Contains(s string) bool {
	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	return bytes.Contains(h.out.buf.Bytes(), []byte(s))
}

// Reset discards everything captured so far.
func (h *BufferedLogHandler) Reset() {
	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	h.out.buf.Reset()
}
