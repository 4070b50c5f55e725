package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMachine(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	type step struct {
		timer bool
		ms    int
		want  Action
		phase Phase
	}
	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "first signal fires leading and arms",
			steps: []step{
				{ms: 1000, want: Action{Fire: true, ArmTimer: true}, phase: PendingTrailing},
				{ms: 1050, want: Action{}, phase: PendingTrailing},
				{timer: true, ms: 1100, want: Action{Fire: true}, phase: Idle},
			},
		},
		{
			name: "signal within interval after trailing only arms",
			steps: []step{
				{ms: 1000, want: Action{Fire: true, ArmTimer: true}, phase: PendingTrailing},
				{timer: true, ms: 1100, want: Action{Fire: true}, phase: Idle},
				{ms: 1300, want: Action{ArmTimer: true}, phase: PendingTrailing},
				{timer: true, ms: 1400, want: Action{Fire: true}, phase: Idle},
			},
		},
		{
			name: "exactly at interval does not fire",
			steps: []step{
				{ms: 1000, want: Action{Fire: true, ArmTimer: true}, phase: PendingTrailing},
				{timer: true, ms: 1100, want: Action{Fire: true}, phase: Idle},
				{ms: 1400, want: Action{ArmTimer: true}, phase: PendingTrailing},
				{timer: true, ms: 1500, want: Action{Fire: true}, phase: Idle},
				{ms: 1801, want: Action{Fire: true, ArmTimer: true}, phase: PendingTrailing},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(DefaultInterval, DefaultTrailing)
			for i, s := range tt.steps {
				var got Action
				if s.timer {
					got = m.OnTimerFired(at(s.ms))
				} else {
					got = m.OnSignal(at(s.ms))
				}
				if got != s.want {
					t.Errorf("step %d: action = %+v, want %+v", i, got, s.want)
				}
				if m.Phase() != s.phase {
					t.Errorf("step %d: phase = %v, want %v", i, m.Phase(), s.phase)
				}
			}
		})
	}
}

func TestDriverCoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{}, 4)
	d := NewDriver(time.Hour, 20*time.Millisecond, func() {
		calls.Add(1)
		done <- struct{}{}
	})

	for i := 0; i < 10; i++ {
		d.Signal()
	}
	// leading call
	<-done
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("trailing call never fired")
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("calls = %d, want 2 (leading + trailing)", n)
	}
}

func TestDriverStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDriver(time.Hour, time.Hour, func() { calls.Add(1) })
	d.Signal()
	if !d.Stop() {
		t.Error("Stop() = false, want true with a pending timer")
	}
	if d.Stop() {
		t.Error("second Stop() = true")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}
