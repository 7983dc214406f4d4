package ident_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/threads/ident"
)

func TestUUID_NewID(t *testing.T) {
	svc := ident.UUID()

	id := svc.NewID()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("NewID() returned unparseable id %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("got UUID version %d, want 7", parsed.Version())
	}
}

func TestUUID_NewID_Unique(t *testing.T) {
	svc := ident.UUID()
	const n = 1000

	seen := make(map[string]bool, n)
	for range n {
		id := svc.NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestUUID_Now(t *testing.T) {
	before := time.Now().UnixMilli()
	got := ident.UUID().Now()
	after := time.Now().UnixMilli()

	if got < before || got > after {
		t.Errorf("Now() = %d, want within [%d, %d]", got, before, after)
	}
}

func TestSequence(t *testing.T) {
	seq := ident.NewSequence("msg", 1000, 10)

	ids := []string{seq.NewID(), seq.NewID(), seq.NewID()}
	want := []string{"msg-1", "msg-2", "msg-3"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("id %d = %q, want %q", i, ids[i], want[i])
		}
	}

	times := []int64{seq.Now(), seq.Now(), seq.Now()}
	wantTimes := []int64{1000, 1010, 1020}
	for i := range wantTimes {
		if times[i] != wantTimes[i] {
			t.Errorf("time %d = %d, want %d", i, times[i], wantTimes[i])
		}
	}
}

func TestSequence_Concurrent(t *testing.T) {
	seq := ident.NewSequence("c", 0, 1)
	const n = 100

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]bool, n)
	)
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			id := seq.NewID()
			mu.Lock()
			ids[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != n {
		t.Errorf("got %d distinct ids, want %d", len(ids), n)
	}
}
