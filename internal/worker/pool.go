// Package worker provides the execution machinery behind the bank: a
// fixed-capacity FIFO queue for accepted requests, a priority-ordered pool
// of worker goroutines, and a monitor that tracks what each worker is doing.
package worker

import (
	"container/heap"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Pool lifecycle errors.
var (
	ErrPoolStopped = errors.New("worker pool is not running")
	ErrNilTask     = errors.New("task function is nil")
)

// Task is a queued unit of work. Higher Priority runs first; within a
// priority level, submission order is preserved.
type Task struct {
	Run         func()
	Description string
	Priority    int
	seq         uint64
}

// taskHeap orders tasks by descending priority, then ascending submission
// sequence so equal-priority tasks stay FIFO.
type taskHeap []Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) { *h = append(*h, x.(Task)) }

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	task := old[n-1]
	old[n-1] = Task{}
	*h = old[:n-1]
	return task
}

// Pool runs submitted tasks on a fixed set of worker goroutines. Workers are
// spawned at construction and sleep on a condition variable until Start; Stop
// drains every queued task, then joins the workers. A stopped pool is
// terminal and rejects further submissions.
//
// A panicking task is logged and absorbed at the worker boundary; the worker
// survives and the active count stays consistent.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   taskHeap
	running bool
	stopped bool
	nextSeq uint64

	size    int
	wg      sync.WaitGroup
	active  atomic.Int64
	queued  atomic.Int64
	monitor *Monitor
	logger  *zap.Logger
}

// NewPool builds a pool with the given number of workers. The workers exist
// immediately but process nothing until Start. A nil monitor or logger is
// replaced with a no-op one.
func NewPool(workers int, monitor *Monitor, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if monitor == nil {
		monitor = NewMonitor()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pool{
		tasks:   make(taskHeap, 0),
		size:    workers,
		monitor: monitor,
		logger:  logger,
	}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 1; i <= workers; i++ {
		name := fmt.Sprintf("worker-%d", i)
		p.monitor.Register(name)
		go p.work(name)
	}
	return p
}

// Start releases the workers. Calling Start on a running or stopped pool is
// a no-op.
func (p *Pool) Start() {
	p.mu.Lock()
	if p.running || p.stopped {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.logger.Info("worker pool started", zap.Int("workers", p.size))
}

// Stop shuts the pool down: no new submissions are accepted, every task
// already queued is executed, and Stop returns only after all workers have
// terminated. Safe to call more than once; later calls just wait.
func (p *Pool) Stop() {
	p.mu.Lock()
	first := !p.stopped
	p.running = false
	p.stopped = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
	if first {
		p.logger.Info("worker pool stopped")
	}
}

// Running reports whether the pool accepts submissions.
func (p *Pool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Submit schedules run on the pool. It returns ErrPoolStopped unless the
// pool is started and not yet stopped, and never blocks on queue depth; the
// task backlog is unbounded.
func (p *Pool) Submit(run func(), description string, priority int) error {
	if run == nil {
		return ErrNilTask
	}
	p.mu.Lock()
	if !p.running || p.stopped {
		p.mu.Unlock()
		return ErrPoolStopped
	}
	p.nextSeq++
	heap.Push(&p.tasks, Task{
		Run:         run,
		Description: description,
		Priority:    priority,
		seq:         p.nextSeq,
	})
	// Incremented before the unlock: a worker can only decrement after it
	// pops, which happens after this section, so the gauge never dips below
	// zero.
	p.queued.Add(1)
	p.mu.Unlock()
	p.cond.Signal()
	return nil
}

// ActiveWorkers reports how many workers are executing a task right now.
func (p *Pool) ActiveWorkers() int { return int(p.active.Load()) }

// QueuedTasks reports how many submitted tasks have not started yet.
func (p *Pool) QueuedTasks() int { return int(p.queued.Load()) }

// Monitor exposes the pool's worker monitor.
func (p *Pool) Monitor() *Monitor { return p.monitor }

// work is the loop every worker goroutine runs: sleep until there is a task
// to take or the pool is stopping, drain the backlog on shutdown, and exit
// only when stopped with nothing left.
func (p *Pool) work(name string) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for !p.stopped && !(p.running && len(p.tasks) > 0) {
			p.cond.Wait()
		}
		if p.stopped && len(p.tasks) == 0 {
			p.mu.Unlock()
			p.monitor.SetStatus(name, StatusTerminated)
			return
		}
		task := heap.Pop(&p.tasks).(Task)
		p.mu.Unlock()
		p.queued.Add(-1)
		p.execute(name, task)
	}
}

// execute runs one task, keeping the monitor and the active count accurate
// even when the task panics.
func (p *Pool) execute(name string, task Task) {
	p.active.Add(1)
	p.monitor.SetStatus(name, StatusExecuting)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked",
				zap.String("worker", name),
				zap.String("task", task.Description),
				zap.Any("panic", r),
			)
		}
		p.monitor.SetStatus(name, StatusIdle)
		p.active.Add(-1)
	}()
	task.Run()
}
