// @focus: #status { report }
// Package status turns XKB keyboard state into status bar lines, one
// line per state change, written for consumers like i3blocks that read
// a persistent pipe.
package status

import (
	"fmt"
	"io"

	"github.com/lixenwraith/keystatus/x11"
)

// Keyboard is the XKB surface the reporter runs against
type Keyboard interface {
	State() (*x11.GetStateReply, error)
	Controls() (*x11.GetControlsReply, error)
	WaitEvent() (x11.Event, error)
	PollEvent() (x11.Event, error)
}

// modSnapshot holds the modifier masks of the last rendered state, the
// reference for deciding whether a state event changes the line
type modSnapshot struct {
	mods    x11.ModMask
	base    x11.ModMask
	latched x11.ModMask
	locked  x11.ModMask
}

// Reporter prints one status line per keyboard state change
type Reporter struct {
	kbd  Keyboard
	out  io.Writer
	last modSnapshot
}

// New returns a Reporter that reads kbd and writes lines to out
func New(kbd Keyboard, out io.Writer) *Reporter {
	return &Reporter{kbd: kbd, out: out}
}

// Render queries the current modifier and controls state and writes one
// status line. The line is built in full before the single Write, so a
// failed query emits nothing.
func (r *Reporter) Render() error {
	state, err := r.kbd.State()
	if err != nil {
		return err
	}
	ctrls, err := r.kbd.Controls()
	if err != nil {
		return err
	}
	if _, err := r.out.Write(renderLine(state, ctrls)); err != nil {
		return fmt.Errorf("write status line: %w", err)
	}
	r.last = modSnapshot{state.Mods, state.BaseMods, state.LatchedMods, state.LockedMods}
	return nil
}

// Wait blocks until an event arrives that warrants a re-render, then
// drains the rest of the queue so one line covers the whole burst.
// State events whose modifier masks match the last rendered state are
// skipped without draining.
func (r *Reporter) Wait() error {
	for {
		ev, err := r.kbd.WaitEvent()
		if err != nil {
			return err
		}
		if st, ok := ev.(x11.StateNotifyEvent); ok && r.unchanged(st) {
			continue
		}
		return r.drain()
	}
}

// unchanged reports whether a state event leaves every mask of the last
// rendered snapshot intact. Group switches and pointer button state
// arrive as state events too; only the modifier masks matter here.
func (r *Reporter) unchanged(st x11.StateNotifyEvent) bool {
	return st.Mods == r.last.mods &&
		st.BaseMods == r.last.base &&
		st.LatchedMods == r.last.latched &&
		st.LockedMods == r.last.locked
}

// drain discards queued events; the pending re-render covers them
func (r *Reporter) drain() error {
	for {
		ev, err := r.kbd.PollEvent()
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
	}
}

// Run renders the current state, then loops re-rendering after every
// relevant keyboard event. It returns only when the keyboard fails.
func (r *Reporter) Run() error {
	for {
		if err := r.Render(); err != nil {
			return err
		}
		if err := r.Wait(); err != nil {
			return err
		}
	}
}
