// Package loader reads texture files off the render thread and hands the results back
// to it. A Manager tracks item progress the way a loading screen expects: one start
// event per batch, one progress event per finished item and one load event when every
// submitted item is done.
package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Callbacks receives item lifecycle events. Every field is optional.
// All callbacks run on the goroutine that calls Manager.Submit (OnStart) or
// Manager.Dispatch (everything else), never on a worker.
type Callbacks struct {
	// OnStart fires when the first item of a batch is submitted.
	OnStart func(url string, loaded, total int)
	// OnProgress fires after every finished item, successful or not.
	OnProgress func(url string, loaded, total int)
	// OnError fires when an item fails, before its OnProgress.
	OnError func(url string, err error)
	// OnLoad fires when the number of finished items reaches the number submitted.
	OnLoad func()
}

// LogCallbacks returns a Callbacks set that reports every event through logger.
//
// Parameters:
//   - logger: destination logger; nil uses slog.Default()
//
// Returns:
//   - Callbacks: the logging callback set
func LogCallbacks(logger *slog.Logger) Callbacks {
	if logger == nil {
		logger = slog.Default()
	}
	return Callbacks{
		OnStart: func(url string, loaded, total int) {
			logger.Info("started loading", "url", url, "loaded", loaded, "total", total)
		},
		OnProgress: func(url string, loaded, total int) {
			logger.Info("loading", "url", url, "loaded", loaded, "total", total)
		},
		OnError: func(url string, err error) {
			logger.Error("error loading", "url", url, "error", err)
		},
		OnLoad: func() {
			logger.Info("finished loading")
		},
	}
}

var (
	// ErrClosed is reported for items submitted to, or still queued in, a closed Manager.
	ErrClosed = errors.New("loader closed")
	// ErrJobPanic wraps a panic recovered from a Job.
	ErrJobPanic = errors.New("loader job panicked")
)

// Job is the blocking part of an item. It runs on a worker goroutine.
type Job func() (any, error)

// Completion receives the Job result on the dispatching goroutine.
type Completion func(result any, err error)

type manager struct {
	mu *sync.Mutex

	callbacks Callbacks
	workers   int
	queueSize int
	pool      worker.DynamicWorkerPool

	loaded  int
	total   int
	loading bool
	nextID  int

	pending  sync.WaitGroup
	queue    []func()
	notifyCh chan struct{}

	closed   bool
	inflight map[int]*queuedItem
}

// queuedItem is a submitted job. Whoever claims it first, a worker or Close, completes it.
type queuedItem struct {
	url     string
	done    Completion
	claimed atomic.Bool
}

// Manager runs item jobs on a worker pool and queues their completions until Dispatch.
type Manager interface {
	// Submit registers an item and schedules job on the worker pool. done is queued with the
	// job result and runs on the next Dispatch, followed by the item's progress accounting.
	//
	// Parameters:
	//   - url: the item identifier reported to callbacks
	//   - job: the blocking work, run on a worker
	//   - done: result handler, run on the dispatching goroutine; may be nil
	Submit(url string, job Job, done Completion)

	// Post queues fn to run on the next Dispatch. It may be called from any goroutine.
	//
	// Parameters:
	//   - fn: the function to run
	Post(fn func())

	// Dispatch runs every queued completion and posted function in submission order.
	// Call it once per frame from the render loop.
	//
	// Returns:
	//   - int: the number of queued entries that ran
	Dispatch() int

	// Notify returns a channel that receives a value whenever something is queued.
	// The channel is buffered by one and never closed.
	//
	// Returns:
	//   - <-chan struct{}: the notification channel
	Notify() <-chan struct{}

	// Progress returns the finished and submitted item counts of the current batch.
	//
	// Returns:
	//   - loaded: finished items
	//   - total: submitted items
	Progress() (loaded, total int)

	// IsLoading reports whether submitted items are still unfinished.
	//
	// Returns:
	//   - bool: true while a batch is in progress
	IsLoading() bool

	// Wait blocks until every submitted job has queued its completion.
	// Completions still need a Dispatch to run.
	Wait()

	// Close stops the worker pool. Jobs not yet started are dropped and complete with
	// ErrClosed on the next Dispatch, so Wait returns once running jobs finish.
	// Items submitted after Close complete with ErrClosed. Safe to call more than once.
	Close()
}

var _ Manager = &manager{}

// NewManager creates a Manager with its own worker pool.
//
// Parameters:
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the new manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &manager{
		mu:        &sync.Mutex{},
		workers:   max(runtime.NumCPU()-1, 1),
		queueSize: 256,
		notifyCh:  make(chan struct{}, 1),
		inflight:  make(map[int]*queuedItem),
	}
	for _, opt := range options {
		opt(m)
	}
	m.pool = worker.NewDynamicWorkerPool(m.workers, m.queueSize, 1*time.Second)
	return m
}

func (m *manager) Submit(url string, job Job, done Completion) {
	m.mu.Lock()
	m.total++
	start := !m.loading
	m.loading = true
	loaded, total := m.loaded, m.total
	id := m.nextID
	m.nextID++
	item := &queuedItem{url: url, done: done}
	closed := m.closed
	if !closed {
		m.inflight[id] = item
		m.pending.Add(1)
	}
	m.mu.Unlock()

	if start && m.callbacks.OnStart != nil {
		m.callbacks.OnStart(url, loaded, total)
	}
	if closed {
		m.complete(item, nil, ErrClosed)
		return
	}

	m.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			if !item.claimed.CompareAndSwap(false, true) {
				return nil, ErrClosed
			}
			defer m.finish(id)
			result, err := runJob(job)
			m.complete(item, result, err)
			return result, err
		},
	})
}

// runJob converts a panic in job into an error so a bad file cannot take down the worker.
func runJob(job Job) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%w: %v", ErrJobPanic, r)
		}
	}()
	return job()
}

// complete queues the item's completion and progress accounting for the next Dispatch.
func (m *manager) complete(item *queuedItem, result any, err error) {
	m.Post(func() {
		if item.done != nil {
			item.done(result, err)
		}
		if err != nil {
			m.itemError(item.url, err)
		}
		m.itemEnd(item.url)
	})
}

func (m *manager) finish(id int) {
	m.mu.Lock()
	delete(m.inflight, id)
	m.mu.Unlock()
	m.pending.Done()
}

func (m *manager) itemError(url string, err error) {
	if m.callbacks.OnError != nil {
		m.callbacks.OnError(url, err)
	}
}

func (m *manager) itemEnd(url string) {
	m.mu.Lock()
	m.loaded++
	loaded, total := m.loaded, m.total
	finished := loaded == total
	if finished {
		m.loading = false
	}
	m.mu.Unlock()

	if m.callbacks.OnProgress != nil {
		m.callbacks.OnProgress(url, loaded, total)
	}
	if finished && m.callbacks.OnLoad != nil {
		m.callbacks.OnLoad()
	}
}

func (m *manager) Post(fn func()) {
	m.mu.Lock()
	m.queue = append(m.queue, fn)
	m.mu.Unlock()
	select {
	case m.notifyCh <- struct{}{}:
	default:
	}
}

func (m *manager) Dispatch() int {
	m.mu.Lock()
	queued := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

func (m *manager) Notify() <-chan struct{} {
	return m.notifyCh
}

func (m *manager) Progress() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded, m.total
}

func (m *manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *manager) Wait() {
	m.pending.Wait()
}

func (m *manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.pool.Stop()

	// a stopped pool may still hand queued tasks to a busy worker; claiming them here
	// makes those tasks no-ops
	m.mu.Lock()
	var dropped []*queuedItem
	for id, item := range m.inflight {
		if item.claimed.CompareAndSwap(false, true) {
			dropped = append(dropped, item)
			delete(m.inflight, id)
		}
	}
	m.mu.Unlock()

	for _, item := range dropped {
		m.complete(item, nil, ErrClosed)
		m.pending.Done()
	}
}
