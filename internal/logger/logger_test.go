package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "WARN", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "", want: slog.LevelInfo},
		{name: "loud", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) got = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("match.id", "abc123")

	log.Debug("debug line")
	log.Warn("warn line")

	assert.Contains(t, debugBuf.String(), "debug line")
	assert.Contains(t, debugBuf.String(), "warn line")
	assert.NotContains(t, warnBuf.String(), "debug line")
	assert.Contains(t, warnBuf.String(), "warn line")
	assert.Contains(t, warnBuf.String(), "match.id=abc123")
}

func TestMultiHandler_KeepsDispatchingAfterError(t *testing.T) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, nil)
	h := NewMultiHandler(failingHandler{text}, text)

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "still written", 0))

	assert.Error(t, err)
	assert.Contains(t, buf.String(), "still written")
}

func TestInit(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := Init("warn", &buf)
	log.Info("hidden")
	slog.Error("shown", "match.id", "m1")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "match.id=m1")
}

// recordingHandler accepts every level and counts what it is handed.
type recordingHandler struct {
	records *[]slog.Record
}

func (recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}

func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestLevelHandler_GatesPermissiveHandler(t *testing.T) {
	var records []slog.Record
	gated := NewLevelHandler(ParseLevel("info"), recordingHandler{records: &records})
	log := slog.New(NewMultiHandler(gated)).With("match.id", "m1").WithGroup("move")

	log.Debug("dropped")
	log.Info("kept")
	log.Error("kept too")

	if len(records) != 2 {
		t.Fatalf("expected 2 records past the gate, got %d", len(records))
	}
	if records[0].Message != "kept" || records[1].Message != "kept too" {
		t.Errorf("unexpected records: %q, %q", records[0].Message, records[1].Message)
	}
	if gated.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
}

// collectingProcessor keeps the body of every record the SDK emits.
type collectingProcessor struct {
	bodies []string
}

func (p *collectingProcessor) OnEmit(_ context.Context, r *sdklog.Record) error {
	p.bodies = append(p.bodies, r.Body().AsString())
	return nil
}

func (p *collectingProcessor) Shutdown(context.Context) error   { return nil }
func (p *collectingProcessor) ForceFlush(context.Context) error { return nil }

func TestInit_ExportsOnlyConfiguredLevel(t *testing.T) {
	prevLogger := slog.Default()
	prevProvider := global.GetLoggerProvider()
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		global.SetLoggerProvider(prevProvider)
	})

	processor := &collectingProcessor{}
	global.SetLoggerProvider(sdklog.NewLoggerProvider(sdklog.WithProcessor(processor)))

	var buf bytes.Buffer
	log := Init("info", &buf)
	log.Debug("debug detail")
	log.Info("match created")

	assert.Equal(t, []string{"match created"}, processor.bodies)
}
