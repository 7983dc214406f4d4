// Package model defines the immutable thread/message snapshot that the reducer
// transforms. Values in this package are never mutated after construction;
// transitions build new slices and share untouched threads and messages.
package model

import "slices"

// Message is a single entry in a thread. CreatedAt is a unix timestamp in
// milliseconds assigned by the injected clock when the message is added.
type Message struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	CreatedAt int64  `json:"created_at" yaml:"created_at"`
}

// Thread is a titled, ordered collection of messages in arrival order.
type Thread struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// MessageIndex returns the position of the message with the given id, or -1.
func (t Thread) MessageIndex(id string) int {
	return slices.IndexFunc(t.Messages, func(m Message) bool {
		return m.ID == id
	})
}

// State is the full snapshot: the ordered threads and the selected thread.
//
// State is handed out by value but its slices are shared between successive
// snapshots. Callers must treat it as read-only.
type State struct {
	ActiveThreadID string   `json:"active_thread_id" yaml:"active_thread_id"`
	Threads        []Thread `json:"threads" yaml:"threads"`
}

// ThreadIndex returns the position of the thread with the given id, or -1.
// The first match in thread order wins.
func (s State) ThreadIndex(id string) int {
	return slices.IndexFunc(s.Threads, func(t Thread) bool {
		return t.ID == id
	})
}

// Thread returns the thread with the given id.
func (s State) Thread(id string) (Thread, bool) {
	i := s.ThreadIndex(id)
	if i < 0 {
		return Thread{}, false
	}
	return s.Threads[i], true
}

// ActiveThread returns the currently selected thread. The second result is
// false when ActiveThreadID names no thread.
func (s State) ActiveThread() (Thread, bool) {
	return s.Thread(s.ActiveThreadID)
}

// FindMessage locates a message by id across all threads, scanning threads in
// order. It returns the thread and message positions, or -1, -1.
func (s State) FindMessage(id string) (thread, message int) {
	for ti, t := range s.Threads {
		if mi := t.MessageIndex(id); mi >= 0 {
			return ti, mi
		}
	}
	return -1, -1
}

// MessageCount returns the number of messages across all threads.
func (s State) MessageCount() int {
	n := 0
	for _, t := range s.Threads {
		n += len(t.Messages)
	}
	return n
}
