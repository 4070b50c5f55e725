// Package debounce throttles bursts of events (scrolls, resizes) into at
// most one leading call per interval plus one trailing call after the burst.
//
// [Machine] is the pure state machine: callers feed it signal and timer
// events with explicit timestamps and act on the returned [Action]. [Driver]
// binds a Machine to real timers for callers that just want a callback.
package debounce

import (
	"sync"
	"time"
)

// Defaults used by the gallery's scroll and resize handlers.
const (
	DefaultInterval = 300 * time.Millisecond
	DefaultTrailing = 100 * time.Millisecond
)

// Phase is the machine's state.
type Phase int

const (
	Idle Phase = iota
	PendingTrailing
)

func (p Phase) String() string {
	if p == PendingTrailing {
		return "pending"
	}
	return "idle"
}

// Action tells the caller what to do after an event.
type Action struct {
	// Fire means run the handler now.
	Fire bool
	// ArmTimer means start a trailing timer of Machine.Trailing.
	ArmTimer bool
}

// Machine is the debounce state machine. The zero value is not usable; use
// New.
type Machine struct {
	Interval time.Duration
	Trailing time.Duration

	phase Phase
	last  time.Time
}

// New returns a machine with the given leading interval and trailing delay.
func New(interval, trailing time.Duration) *Machine {
	return &Machine{Interval: interval, Trailing: trailing}
}

// Phase returns the current state.
func (m *Machine) Phase() Phase { return m.phase }

// Last returns when the handler last fired.
func (m *Machine) Last() time.Time { return m.last }

// OnSignal handles one incoming event. While a trailing timer is pending
// the event is absorbed. Otherwise the handler fires immediately if the
// last call is older than Interval, and a trailing timer is armed either
// way.
func (m *Machine) OnSignal(now time.Time) Action {
	if m.phase == PendingTrailing {
		return Action{}
	}
	var a Action
	if now.After(m.last.Add(m.Interval)) {
		a.Fire = true
		m.last = now
	}
	a.ArmTimer = true
	m.phase = PendingTrailing
	return a
}

// OnTimerFired handles the trailing timer. It always fires.
func (m *Machine) OnTimerFired(now time.Time) Action {
	m.phase = Idle
	m.last = now
	return Action{Fire: true}
}

// Driver runs a Machine against wall-clock timers. Calls to fn are
// serialized; fn must not call Signal.
type Driver struct {
	mu  sync.Mutex
	m   *Machine
	fn  func()
	now func() time.Time
	t   *time.Timer
	gen uint64
}

// NewDriver returns a driver that calls fn through a machine with the given
// timings.
func NewDriver(interval, trailing time.Duration, fn func()) *Driver {
	return &Driver{m: New(interval, trailing), fn: fn, now: time.Now}
}

// Signal reports one event.
func (d *Driver) Signal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	a := d.m.OnSignal(d.now())
	if a.ArmTimer {
		d.gen++
		gen := d.gen
		d.t = time.AfterFunc(d.m.Trailing, func() { d.fire(gen) })
	}
	if a.Fire {
		d.fn()
	}
}

func (d *Driver) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.t == nil || gen != d.gen {
		return
	}
	d.t = nil
	if d.m.OnTimerFired(d.now()).Fire {
		d.fn()
	}
}

// Stop cancels a pending trailing call and returns the machine to idle.
// It reports whether a call was cancelled.
func (d *Driver) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.t == nil {
		return false
	}
	stopped := d.t.Stop()
	d.t = nil
	d.m.phase = Idle
	return stopped
}
