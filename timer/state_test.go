package timer

import (
	"sync"
	"testing"
)

func TestStateBoxLoadStore(t *testing.T) {
	var b stateBox
	if b.load() != StateInit {
		t.Fatalf("zero-value stateBox should be StateInit, got %s", b.load())
	}
	for _, s := range []State{StateRunning, StatePaused, StateResumed, StateCancelled, StateDeleted} {
		b.store(s)
		if got := b.load(); got != s {
			t.Errorf("store/load mismatch: stored %s got %s", s, got)
		}
	}
}

func TestStateBoxCAS(t *testing.T) {
	var b stateBox
	b.store(StateRunning)
	if b.cas(StatePaused, StateCancelled) {
		t.Fatalf("cas succeeded from the wrong expected state")
	}
	if !b.cas(StateRunning, StatePaused) {
		t.Fatalf("cas failed from the right expected state")
	}
	if b.load() != StatePaused {
		t.Fatalf("expected PAUSED after cas, got %s", b.load())
	}
}

// TestStateBoxConcurrentCAS exercises the same one-writer-wins discipline
// the wheel package's lineage validated for its own atomically-accessed
// per-entry info word: of N goroutines racing a single cas(from, to),
// exactly one observes success.
func TestStateBoxConcurrentCAS(t *testing.T) {
	const n = 64
	var b stateBox
	b.store(StateRunning)
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if b.cas(StateRunning, StatePaused) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly 1 winning cas, got %d", wins)
	}
	if b.load() != StatePaused {
		t.Fatalf("expected PAUSED after race, got %s", b.load())
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateInit:      "INIT",
		StateRunning:   "RUNNING",
		StateCancelled: "CANCELLED",
		StateDeleted:   "DELETED",
		StatePaused:    "PAUSED",
		StateResumed:   "RESUMED",
		State(99):      "UNKNOWN",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int32(s), got, want)
		}
	}
}
