package txprogress

import (
	"sync"
	"time"
)

const defaultCloseDelay = 2 * time.Second

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseOpen
	PhaseClosing
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// State is a snapshot of a tracker run
type State struct {
	IsOpen      bool   `json:"isOpen"`
	CurrentStep int    `json:"currentStep"`
	IsLoading   bool   `json:"isLoading"`
	Error       string `json:"error,omitempty"`
	Message     string `json:"message"`
	Steps       []Step `json:"steps"`
}

// Label returns the step matching CurrentStep. ok is false once the run
// advanced past the last step.
func (s State) Label() (step Step, ok bool) {
	if s.CurrentStep < 0 || s.CurrentStep >= len(s.Steps) {
		return Step{}, false
	}
	return s.Steps[s.CurrentStep], true
}

type options struct {
	closeDelay time.Duration
	steps      []Step
	observer   func(State)
}

type Option func(*options)

// WithCloseDelay sets how long a completed run stays visible before returning to idle
func WithCloseDelay(d time.Duration) Option {
	return func(o *options) {
		o.closeDelay = d
	}
}

func WithSteps(steps []Step) Option {
	return func(o *options) {
		o.steps = append([]Step(nil), steps...)
	}
}

func WithKind(kind Kind) Option {
	return func(o *options) {
		o.steps = DefaultSteps(kind)
	}
}

// WithObserver registers a callback receiving every state change. It is called
// without the tracker lock held, and from a timer goroutine for the auto close.
func WithObserver(fn func(State)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Tracker narrates one in-flight multi-step operation. Concurrent flows must
// use separate trackers.
type Tracker struct {
	mu    sync.Mutex
	opts  options
	state State
	phase Phase
	// bumped on every Start and Reset so a stale close timer becomes a no-op
	generation uint64
	closer     *time.Timer
}

func New(opts ...Option) *Tracker {
	o := options{closeDelay: defaultCloseDelay}
	for _, opt := range opts {
		opt(&o)
	}
	return &Tracker{opts: o}
}

// Start opens a fresh run at step 0. steps, when given, replace the default
// steps for this run only.
func (t *Tracker) Start(steps ...Step) {
	t.update(func() {
		t.cancelCloseLocked()
		t.generation++
		run := t.opts.steps
		if len(steps) > 0 {
			run = steps
		}
		t.state = State{
			IsOpen:    true,
			IsLoading: true,
			Steps:     append([]Step(nil), run...),
		}
		t.phase = PhaseOpen
	})
}

// Advance moves to the next step. Advancing past the last step is allowed.
func (t *Tracker) Advance(message ...string) {
	t.update(func() {
		t.state.CurrentStep++
		setMessage(&t.state, message)
	})
}

// SetStep jumps to step n without bound checks.
func (t *Tracker) SetStep(n int, message ...string) {
	t.update(func() {
		t.state.CurrentStep = n
		setMessage(&t.state, message)
	})
}

func (t *Tracker) UpdateMessage(message string) {
	t.update(func() {
		t.state.Message = message
	})
}

// Complete stops loading and schedules the return to idle after the close delay.
func (t *Tracker) Complete(message ...string) {
	t.update(func() {
		t.state.IsLoading = false
		setMessage(&t.state, message)
		t.phase = PhaseClosing

		t.cancelCloseLocked()
		gen := t.generation
		t.closer = time.AfterFunc(t.opts.closeDelay, func() {
			t.closeIfCurrent(gen)
		})
	})
}

// Fail keeps the run open at its current step with the error shown.
func (t *Tracker) Fail(message string) {
	t.update(func() {
		t.state.IsLoading = false
		t.state.Error = message
		t.phase = PhaseError
	})
}

// Reset forces the tracker back to idle from any state.
func (t *Tracker) Reset() {
	t.update(func() {
		t.cancelCloseLocked()
		t.generation++
		t.toIdleLocked()
	})
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

func (t *Tracker) closeIfCurrent(gen uint64) {
	t.update(func() {
		if gen != t.generation || t.phase != PhaseClosing {
			return
		}
		t.closer = nil
		t.toIdleLocked()
	})
}

func (t *Tracker) update(fn func()) {
	t.mu.Lock()
	fn()
	s := t.snapshotLocked()
	observer := t.opts.observer
	t.mu.Unlock()

	if observer != nil {
		observer(s)
	}
}

func (t *Tracker) toIdleLocked() {
	t.state = State{}
	t.phase = PhaseIdle
}

func (t *Tracker) cancelCloseLocked() {
	if t.closer != nil {
		t.closer.Stop()
		t.closer = nil
	}
}

func (t *Tracker) snapshotLocked() State {
	s := t.state
	s.Steps = append([]Step(nil), t.state.Steps...)
	return s
}

func setMessage(s *State, message []string) {
	if len(message) > 0 {
		s.Message = message[0]
	}
}
