package messenger

import "github.com/tailored-agentic-units/threads/core/model"

// Tab is the view of one thread in the tab bar.
type Tab struct {
	ID       string
	Title    string
	Active   bool
	Messages int
}

// Tabs derives the tab bar from a snapshot, in thread order.
func Tabs(s model.State) []Tab {
	tabs := make([]Tab, len(s.Threads))
	for i, t := range s.Threads {
		tabs[i] = Tab{
			ID:       t.ID,
			Title:    t.Title,
			Active:   t.ID == s.ActiveThreadID,
			Messages: len(t.Messages),
		}
	}
	return tabs
}

// ActiveMessages returns the messages of the active thread, or nil when the
// active id names no thread.
func ActiveMessages(s model.State) []model.Message {
	t, ok := s.ActiveThread()
	if !ok {
		return nil
	}
	return t.Messages
}
