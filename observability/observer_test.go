package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tailored-agentic-units/threads/observability"
)

type captureObserver struct {
	events []observability.Event
}

func (c *captureObserver) OnEvent(_ context.Context, event observability.Event) {
	c.events = append(c.events, event)
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  string
	}{
		{1, "TRACE"},
		{observability.LevelVerbose, "DEBUG"},
		{observability.LevelInfo, "INFO"},
		{observability.LevelWarning, "WARN"},
		{observability.LevelError, "ERROR"},
		{21, "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  slog.Level
	}{
		{observability.LevelVerbose, slog.LevelDebug},
		{observability.LevelInfo, slog.LevelInfo},
		{observability.LevelWarning, slog.LevelWarn},
		{observability.LevelError, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestMultiObserver(t *testing.T) {
	first := &captureObserver{}
	second := &captureObserver{}

	multi := observability.NewMultiObserver(first, nil, second)
	multi.OnEvent(context.Background(), observability.Event{
		Type:  "store.dispatch",
		Level: observability.LevelInfo,
	})

	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("got %d and %d events, want 1 each", len(first.events), len(second.events))
	}
	if first.events[0].Type != "store.dispatch" {
		t.Errorf("event type = %q, want %q", first.events[0].Type, "store.dispatch")
	}
}

func TestNoOpObserver(t *testing.T) {
	observability.NoOpObserver{}.OnEvent(context.Background(), observability.Event{
		Type: "store.dispatch",
		Data: map[string]any{"action": "OPEN_THREAD"},
	})
}

func TestSlogObserver_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		handler   slog.Level
		expectLog bool
	}{
		{"verbose at debug", observability.LevelVerbose, slog.LevelDebug, true},
		{"verbose at info", observability.LevelVerbose, slog.LevelInfo, false},
		{"warning at info", observability.LevelWarning, slog.LevelInfo, true},
		{"info at error", observability.LevelInfo, slog.LevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.handler}))

			observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
				Type:      "store.reject",
				Level:     tt.level,
				Timestamp: time.Now(),
				Source:    "store",
			})

			if got := buf.Len() > 0; got != tt.expectLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.expectLog, buf.String())
			}
		})
	}
}

func TestSlogObserver_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
		Type:   "store.dispatch",
		Level:  observability.LevelInfo,
		Source: "store.Dispatch",
		Data: map[string]any{
			"action":      "ADD_MESSAGE",
			"subscribers": 2,
		},
	})

	out := buf.String()
	for _, want := range []string{"store.dispatch", "source=store.Dispatch", "action=ADD_MESSAGE", "subscribers=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
	if strings.Index(out, "action=") > strings.Index(out, "subscribers=") {
		t.Errorf("data attributes not in key order: %s", out)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"noop", "slog"} {
		obs, err := observability.GetObserver(name)
		if err != nil {
			t.Errorf("GetObserver(%q) error: %v", name, err)
		}
		if obs == nil {
			t.Errorf("GetObserver(%q) returned nil", name)
		}
	}

	if _, err := observability.GetObserver("nonexistent"); !errors.Is(err, observability.ErrUnknownObserver) {
		t.Errorf("GetObserver(nonexistent) error = %v, want %v", err, observability.ErrUnknownObserver)
	}
}

func TestRegistry_RegisterObserver(t *testing.T) {
	custom := &captureObserver{}
	observability.RegisterObserver("capture-test", custom)

	obs, err := observability.GetObserver("capture-test")
	if err != nil {
		t.Fatalf("GetObserver() error: %v", err)
	}
	obs.OnEvent(context.Background(), observability.Event{Type: "store.notify"})

	if len(custom.events) != 1 {
		t.Errorf("got %d events, want 1", len(custom.events))
	}
	if !slices.Contains(observability.ObserverNames(), "capture-test") {
		t.Error("ObserverNames() does not include the registered observer")
	}
}

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()

	obs, err := observability.NewMetricsObserver(reg, "threads")
	if err != nil {
		t.Fatalf("NewMetricsObserver() error: %v", err)
	}

	ctx := context.Background()
	obs.OnEvent(ctx, observability.Event{Type: "store.dispatch", Level: observability.LevelInfo})
	obs.OnEvent(ctx, observability.Event{Type: "store.dispatch", Level: observability.LevelInfo})
	obs.OnEvent(ctx, observability.Event{Type: "store.reject", Level: observability.LevelWarning})

	expected := `
# HELP threads_events_total Events emitted by the message store, by type and level.
# TYPE threads_events_total counter
threads_events_total{level="INFO",type="store.dispatch"} 2
threads_events_total{level="WARN",type="store.reject"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "threads_events_total"); err != nil {
		t.Error(err)
	}
}

func TestMetricsObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	if _, err := observability.NewMetricsObserver(reg, "dup"); err != nil {
		t.Fatalf("first NewMetricsObserver() error: %v", err)
	}
	if _, err := observability.NewMetricsObserver(reg, "dup"); err == nil {
		t.Error("second registration should fail")
	}
}

func TestMetricsObserver_NilRegisterer(t *testing.T) {
	obs, err := observability.NewMetricsObserver(nil, "unregistered")
	if err != nil {
		t.Fatalf("NewMetricsObserver(nil) error: %v", err)
	}
	obs.OnEvent(context.Background(), observability.Event{Type: "store.notify", Level: observability.LevelVerbose})
}
