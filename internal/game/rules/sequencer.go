package rules

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSequencerRunning is returned when ContinueWith is called on a sequencer
// that is still draining its queue.
var ErrSequencerRunning = errors.New("sequencer already running")

// TaskKind describes what a queued task does.
type TaskKind string

const (
	// TaskKindAnimation waits for a view animation.
	TaskKindAnimation TaskKind = "ANIMATION"
	// TaskKindDamage applies damage to a creature or player.
	TaskKindDamage TaskKind = "DAMAGE"
	// TaskKindHook runs a card hook.
	TaskKindHook TaskKind = "HOOK"
	// TaskKindTurn is a turn-loop step.
	TaskKindTurn TaskKind = "TURN"
)

// Task is a single asynchronous step. Run must call done exactly once,
// either before returning or later from any goroutine.
type Task struct {
	ID          string
	Description string
	Kind        TaskKind
	Run         func(done func())
}

// Sequencer runs queued tasks one at a time in FIFO order. A task does not
// start until the previous task has signalled completion.
type Sequencer struct {
	mu      sync.Mutex
	tasks   []Task
	running bool
	final   func()
}

// NewSequencer creates an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{
		tasks: make([]Task, 0, 8),
	}
}

// Push appends a task to the tail of the queue. It is legal while the
// sequencer is running, including from inside a running task.
func (s *Sequencer) Push(task Task) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// PushFunc appends an anonymous task.
func (s *Sequencer) PushFunc(description string, run func(done func())) {
	s.Push(Task{Description: description, Run: run})
}

// Len returns the number of tasks still waiting to run.
func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// IsRunning reports whether the sequencer is draining its queue.
func (s *Sequencer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// ContinueWith starts draining the queue and calls final exactly once after
// the last task completes. On an empty queue final is called immediately.
func (s *Sequencer) ContinueWith(final func()) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrSequencerRunning
	}
	s.running = true
	s.final = final
	s.mu.Unlock()

	s.drain()
	return nil
}

// drain runs tasks until the queue is empty or a task completes
// asynchronously, in which case its completion resumes the drain.
func (s *Sequencer) drain() {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			final := s.final
			s.final = nil
			s.running = false
			s.mu.Unlock()
			if final != nil {
				final()
			}
			return
		}
		task := s.tasks[0]
		s.tasks[0] = Task{}
		s.tasks = s.tasks[1:]
		s.mu.Unlock()

		if !s.run(task) {
			return
		}
	}
}

// run executes a task and reports whether it completed before returning.
func (s *Sequencer) run(task Task) bool {
	c := &completion{resume: s.drain}
	if task.Run == nil {
		return true
	}
	task.Run(c.signal)
	return c.returned()
}

// completion tracks a single task's done callback. Whichever of signal and
// returned happens second decides who continues the drain.
type completion struct {
	mu       sync.Mutex
	done     bool
	finished bool
	resume   func()
}

func (c *completion) signal() {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	resume := c.finished
	c.mu.Unlock()

	if resume {
		c.resume()
	}
}

func (c *completion) returned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished = true
	return c.done
}
