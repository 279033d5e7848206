package x11

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ErrConnClosed reports that the X server hung up the connection
var ErrConnClosed = errors.New("x11 connection closed")

// Conn is an X connection with the XKB extension negotiated. It exposes
// the handful of operations the status loop needs, all addressed to the
// core keyboard.
type Conn struct {
	x           *xgb.Conn
	eventBase   byte
	errorBase   byte
	serverMajor uint16
	serverMinor uint16
}

// Open connects to the X server on the given display and negotiates the
// XKB extension. An empty display falls back to the DISPLAY environment
// variable.
func Open(display string) (*Conn, error) {
	x, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := Init(x); err != nil {
		x.Close()
		return nil, fmt.Errorf("xkb init: %w", err)
	}
	ext, err := xproto.QueryExtension(x, uint16(len(extName)), extName).Reply()
	if err != nil {
		x.Close()
		return nil, fmt.Errorf("xkb query extension: %w", err)
	}
	use, err := UseExtension(x, MajorVersion, MinorVersion).Reply()
	if err != nil {
		x.Close()
		return nil, fmt.Errorf("xkb use extension: %w", err)
	}
	if !use.Supported {
		x.Close()
		return nil, fmt.Errorf("xkb version %d.%d rejected by server speaking %d.%d",
			MajorVersion, MinorVersion, use.ServerMajor, use.ServerMinor)
	}
	return &Conn{
		x:           x,
		eventBase:   ext.FirstEvent,
		errorBase:   ext.FirstError,
		serverMajor: use.ServerMajor,
		serverMinor: use.ServerMinor,
	}, nil
}

// Close shuts the connection down
func (c *Conn) Close() {
	c.x.Close()
}

// EventBase returns the first X event code assigned to the extension;
// every XKB event arrives under this code
func (c *Conn) EventBase() byte {
	return c.eventBase
}

// ErrorBase returns the first X error code assigned to the extension
func (c *Conn) ErrorBase() byte {
	return c.errorBase
}

// ServerVersion returns the XKB protocol version the server announced
func (c *Conn) ServerVersion() (major, minor uint16) {
	return c.serverMajor, c.serverMinor
}

// State queries the core keyboard's current modifier state
func (c *Conn) State() (*GetStateReply, error) {
	reply, err := GetState(c.x, UseCoreKbd).Reply()
	if err != nil {
		return nil, fmt.Errorf("xkb get state: %w", err)
	}
	if reply == nil {
		return nil, fmt.Errorf("xkb get state: %w", ErrConnClosed)
	}
	return reply, nil
}

// Controls queries the core keyboard's controls block
func (c *Conn) Controls() (*GetControlsReply, error) {
	reply, err := GetControls(c.x, UseCoreKbd).Reply()
	if err != nil {
		return nil, fmt.Errorf("xkb get controls: %w", err)
	}
	if reply == nil {
		return nil, fmt.Errorf("xkb get controls: %w", ErrConnClosed)
	}
	return reply, nil
}

// Subscribe selects delivery of the given XKB event categories for the
// core keyboard, with every detail of each category included. The
// server confirms the selection before Subscribe returns.
func (c *Conn) Subscribe(events EventMask) error {
	if err := SelectEventsChecked(c.x, UseCoreKbd, events, 0, events).Check(); err != nil {
		return fmt.Errorf("xkb select events: %w", err)
	}
	return nil
}

// WaitEvent blocks until the next XKB event arrives. It returns
// ErrConnClosed once the connection is gone and wraps any X error
// delivered on the event stream.
func (c *Conn) WaitEvent() (Event, error) {
	for {
		ev, xerr := c.x.WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, ErrConnClosed
		}
		if xerr != nil {
			return nil, fmt.Errorf("event stream: %w", xerr)
		}
		if xev, ok := ev.(Event); ok {
			return xev, nil
		}
		// Nothing else is subscribed on this connection; skip any
		// stray core event rather than stall the caller
	}
}

// PollEvent returns the next queued XKB event without blocking. A nil
// event with nil error means the queue is empty.
func (c *Conn) PollEvent() (Event, error) {
	for {
		ev, xerr := c.x.PollForEvent()
		if xerr != nil {
			return nil, fmt.Errorf("event stream: %w", xerr)
		}
		if ev == nil {
			return nil, nil
		}
		if xev, ok := ev.(Event); ok {
			return xev, nil
		}
	}
}
