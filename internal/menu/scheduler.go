package menu

import (
	"context"
	"sync/atomic"
)

type taskState int

const (
	taskPending taskState = iota
	taskFinished
	taskCancelled
)

// Task is a suspended operation resumed by Scheduler.Tick.
type Task struct {
	name   string
	poll   func() bool
	onDone func()
	cancel context.CancelFunc
	state  taskState
	err    error
}

// Name identifies the task in traces.
func (t *Task) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Pending reports whether the task has neither finished nor been cancelled.
func (t *Task) Pending() bool {
	return t != nil && t.state == taskPending
}

// Cancelled reports whether Cancel was called before the task finished.
func (t *Task) Cancelled() bool {
	return t != nil && t.state == taskCancelled
}

// Err returns the error reported by a finished routine task.
func (t *Task) Err() error {
	if t == nil {
		return nil
	}
	return t.err
}

// Cancel stops the task. Its completion callback will not run. Cancelling
// a finished task does nothing.
func (t *Task) Cancel() {
	if t == nil || t.state != taskPending {
		return
	}
	t.state = taskCancelled
	if t.cancel != nil {
		t.cancel()
	}
}

// Scheduler is a cooperative, single-threaded task runner driven by a
// per-frame Tick. It is not safe for concurrent use, except for Frame,
// which trace logging reads from other goroutines.
type Scheduler struct {
	tasks []*Task
	frame atomic.Uint64
}

// NewScheduler returns an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Go registers a task whose poll function is evaluated once per tick until
// it returns true, at which point onDone runs on the tick thread.
func (s *Scheduler) Go(name string, poll func() bool, onDone func()) *Task {
	t := &Task{name: name, poll: poll, onDone: onDone}
	s.tasks = append(s.tasks, t)
	return t
}

// GoRoutine runs routine on its own goroutine and completes the task on the
// first tick after the routine returns. done receives the routine error.
func (s *Scheduler) GoRoutine(name string, routine Routine, done func(error)) *Task {
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	t := &Task{name: name, cancel: cancel}
	t.poll = func() bool {
		select {
		case err := <-result:
			t.err = err
			return true
		default:
			return false
		}
	}
	t.onDone = func() {
		cancel()
		if done != nil {
			done(t.err)
		}
	}
	go func() {
		result <- routine(ctx)
	}()
	s.tasks = append(s.tasks, t)
	return t
}

// Tick advances the frame counter and polls every pending task once, in
// the order they were started. Tasks started during the tick are first
// polled on the next one. It returns the number of tasks still pending.
func (s *Scheduler) Tick() int {
	s.frame.Add(1)
	current := s.tasks
	s.tasks = nil
	keep := make([]*Task, 0, len(current))
	for _, t := range current {
		if t.state != taskPending {
			continue
		}
		if !t.poll() {
			keep = append(keep, t)
			continue
		}
		t.state = taskFinished
		if t.onDone != nil {
			t.onDone()
		}
	}
	s.tasks = append(keep, s.tasks...)
	return s.Pending()
}

// Pending counts tasks that have not finished or been cancelled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if t.state == taskPending {
			n++
		}
	}
	return n
}

// Frame returns the number of ticks processed so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame.Load()
}
