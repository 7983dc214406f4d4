package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tailored-agentic-units/threads/core/model"
	"github.com/tailored-agentic-units/threads/seed"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out, _ := executeWithStderr(t, args...)
	return out
}

func executeWithStderr(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v failed: %v", args, err)
	}
	return out.String(), errOut.String()
}

func TestRender(t *testing.T) {
	now := time.UnixMilli(1_700_000_600_000)

	s := seed.Default()
	s.ActiveThreadID = "2-ge91"
	s.Threads[1].Messages = []model.Message{{ID: "m1", Text: "Hi", CreatedAt: 1_700_000_000_000}}

	var buf bytes.Buffer
	render(&buf, s, now)
	out := buf.String()

	for _, want := range []string{"* 2-ge91", "Power (1 message)", "Ramesh (0 messages)", "Hi  10 minutes ago  [m1]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_DanglingActive(t *testing.T) {
	s := seed.Default()
	s.ActiveThreadID = "ghost"

	var buf bytes.Buffer
	render(&buf, s, time.Now())

	if !strings.Contains(buf.String(), `Active thread "ghost" does not exist`) {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestSeedCommand(t *testing.T) {
	t.Setenv(configEnv, "")

	out := execute(t, "seed")

	parsed, err := seed.Parse([]byte(out))
	if err != nil {
		t.Fatalf("seed output does not parse: %v\n%s", err, out)
	}
	if parsed.ActiveThreadID != "1-fca2" {
		t.Errorf("got active %q, want %q", parsed.ActiveThreadID, "1-fca2")
	}
}

func TestReplayCommand(t *testing.T) {
	t.Setenv(configEnv, "")

	script := filepath.Join(t.TempDir(), "script.yaml")
	content := `
- type: OPEN_THREAD
  id: 2-ge91
- type: ADD_MESSAGE
  thread_id: 2-ge91
  text: Hello there
- type: ADD_MESSAGE
  thread_id: missing
  text: dropped
- type: DELETE_MESSAGE
  id: msg-1
`
	if err := os.WriteFile(script, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out := execute(t, "replay", "--script", script, "--sequential-ids")

	for _, want := range []string{"* 2-ge91", "(no messages)", "Applied: 3, rejected: 1", "[3] ADD_MESSAGE"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReplayCommand_ConfiguredObserver(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.yaml")
	if err := os.WriteFile(script, []byte("- type: OPEN_THREAD\n  id: 2-ge91\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name     string
		observer string
		wantLogs bool
	}{
		{"slog logs replay events", "slog", true},
		{"noop silences replay events", "noop", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := filepath.Join(dir, tt.observer+".yaml")
			if err := os.WriteFile(config, []byte("observer: "+tt.observer+"\n"), 0644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			_, stderr := executeWithStderr(t, "replay", "--script", script, "--config", config)

			if got := strings.Contains(stderr, "messenger.replay.start"); got != tt.wantLogs {
				t.Errorf("replay events logged = %v, want %v\n%s", got, tt.wantLogs, stderr)
			}
		})
	}
}
