package worker

import (
	"sort"
	"sync"
	"time"
)

// Worker lifecycle states as reported to the monitor.
const (
	StatusIdle       = "IDLE"
	StatusExecuting  = "EXECUTING"
	StatusTerminated = "TERMINATED"
)

// Info is one worker's monitoring record.
type Info struct {
	Name      string
	Status    string
	StartedAt time.Time
}

// Monitor tracks worker state by name. Workers register themselves once and
// update their status as they move between tasks; reporting code asks for a
// snapshot. All methods are safe for concurrent use.
type Monitor struct {
	mu      sync.Mutex
	workers map[string]Info
}

// NewMonitor builds an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{workers: make(map[string]Info)}
}

// Register records a worker under name. Re-registering resets its record.
func (m *Monitor) Register(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers[name] = Info{
		Name:      name,
		Status:    StatusIdle,
		StartedAt: time.Now(),
	}
}

// SetStatus updates the state of a registered worker. Unknown names are
// ignored.
func (m *Monitor) SetStatus(name, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, ok := m.workers[name]
	if !ok {
		return
	}
	info.Status = status
	m.workers[name] = info
}

// Snapshot returns a copy of every worker record, sorted by name. Mutating
// the result does not touch the monitor.
func (m *Monitor) Snapshot() []Info {
	m.mu.Lock()
	infos := make([]Info, 0, len(m.workers))
	for _, info := range m.workers {
		infos = append(infos, info)
	}
	m.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Executing counts workers currently running a task.
func (m *Monitor) Executing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, info := range m.workers {
		if info.Status == StatusExecuting {
			n++
		}
	}
	return n
}
