package worker

import (
	"sync"
	"testing"
)

func TestMonitorRegisterAndSetStatus(t *testing.T) {
	m := NewMonitor()
	m.Register("worker-1")

	infos := m.Snapshot()
	if len(infos) != 1 {
		t.Fatalf("Snapshot() has %d entries, want 1", len(infos))
	}
	if infos[0].Status != StatusIdle {
		t.Errorf("registered status = %s, want %s", infos[0].Status, StatusIdle)
	}
	if infos[0].StartedAt.IsZero() {
		t.Error("StartedAt is zero")
	}

	m.SetStatus("worker-1", StatusExecuting)
	if got := m.Snapshot()[0].Status; got != StatusExecuting {
		t.Errorf("status after SetStatus = %s, want %s", got, StatusExecuting)
	}
}

func TestMonitorIgnoresUnknownNames(t *testing.T) {
	m := NewMonitor()
	m.SetStatus("ghost", StatusExecuting)
	if got := len(m.Snapshot()); got != 0 {
		t.Errorf("Snapshot() has %d entries after updating unknown name, want 0", got)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	m := NewMonitor()
	m.Register("worker-1")

	snap := m.Snapshot()
	m.SetStatus("worker-1", StatusExecuting)

	if snap[0].Status != StatusIdle {
		t.Errorf("earlier snapshot mutated: status = %s, want %s", snap[0].Status, StatusIdle)
	}

	// Mutating the returned slice must not touch the monitor either.
	snap[0].Status = StatusTerminated
	if got := m.Snapshot()[0].Status; got != StatusExecuting {
		t.Errorf("monitor state = %s after mutating a snapshot, want %s", got, StatusExecuting)
	}
}

func TestSnapshotSortedByName(t *testing.T) {
	m := NewMonitor()
	for _, name := range []string{"worker-2", "dispatcher", "worker-1"} {
		m.Register(name)
	}

	infos := m.Snapshot()
	want := []string{"dispatcher", "worker-1", "worker-2"}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Errorf("Snapshot()[%d] = %q, want %q", i, info.Name, want[i])
		}
	}
}

func TestMonitorConcurrentUpdates(t *testing.T) {
	m := NewMonitor()
	const workers = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			m.Register(name)
			for j := 0; j < 100; j++ {
				m.SetStatus(name, StatusExecuting)
				m.SetStatus(name, StatusIdle)
				_ = m.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	if got := len(m.Snapshot()); got != workers {
		t.Errorf("Snapshot() has %d entries, want %d", got, workers)
	}
}
