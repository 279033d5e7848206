// Keystatus reports keyboard modifier and accessibility state to
// stdout, one line per change, in the persistent form i3blocks expects
// from a blocklet with interval=persist.
//
// Latched modifiers print lowercase, locked ones uppercase, followed by
// "sticky" and "accessx" while those features are enabled. An idle
// keyboard prints an empty line so the bar clears.
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/keystatus/status"
	"github.com/lixenwraith/keystatus/x11"
)

func main() {
	display := os.Getenv("DISPLAY")

	conn, err := x11.Open("")
	if err != nil {
		fatalf("display %q: %v", display, err)
	}
	defer conn.Close()

	// Probe the core keyboard before subscribing; a server without a
	// usable device fails here instead of mid-loop
	if _, err := conn.Controls(); err != nil {
		fatalf("display %q: %v", display, err)
	}

	events := x11.StateNotifyMask | x11.ControlsNotifyMask | x11.AccessXNotifyMask
	if err := conn.Subscribe(events); err != nil {
		fatalf("%v", err)
	}

	rep := status.New(conn, os.Stdout)
	if err := rep.Run(); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "keystatus: "+format+"\n", args...)
	os.Exit(1)
}
