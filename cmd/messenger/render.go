package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tailored-agentic-units/threads/core/model"
	"github.com/tailored-agentic-units/threads/messenger"
)

// render prints the tab bar followed by the active thread's messages.
// Message times are shown relative to now.
func render(w io.Writer, s model.State, now time.Time) {
	fmt.Fprintln(w, "Threads:")
	for _, tab := range messenger.Tabs(s) {
		marker := " "
		if tab.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-12s %s (%s)\n", marker, tab.ID, tab.Title, pluralMessages(tab.Messages))
	}

	active, ok := s.ActiveThread()
	if !ok {
		fmt.Fprintf(w, "\nActive thread %q does not exist\n", s.ActiveThreadID)
		return
	}

	fmt.Fprintf(w, "\n%s:\n", active.Title)
	if len(active.Messages) == 0 {
		fmt.Fprintln(w, "  (no messages)")
		return
	}
	for _, msg := range active.Messages {
		at := time.UnixMilli(msg.CreatedAt)
		fmt.Fprintf(w, "  %s  %s  [%s]\n", msg.Text, humanize.RelTime(at, now, "ago", "from now"), msg.ID)
	}
}

func pluralMessages(n int) string {
	if n == 1 {
		return "1 message"
	}
	return humanize.Comma(int64(n)) + " messages"
}
