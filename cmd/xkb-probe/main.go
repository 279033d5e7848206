// Xkb-probe dumps the server's XKB version, the core keyboard's
// modifier state and its controls block. With -watch it keeps the
// connection open and traces every XKB event as it arrives. Companion
// diagnostic for keystatus bug reports.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/keystatus/x11"
)

func main() {
	display := flag.String("display", "", "X display to probe (defaults to $DISPLAY)")
	watch := flag.Bool("watch", false, "subscribe to all XKB events and trace them")
	flag.Parse()

	conn, err := x11.Open(*display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xkb-probe: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	major, minor := conn.ServerVersion()
	fmt.Printf("XKB version: %d.%d\n", major, minor)
	// The base numbers locate XKB traffic in protocol dumps
	fmt.Printf("event base: %d, error base: %d\n", conn.EventBase(), conn.ErrorBase())

	state, err := conn.State()
	if err != nil {
		fmt.Fprintf(os.Stderr, "xkb-probe: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\ndevice %d state:\n", state.DeviceID)
	fmt.Printf("  mods:     %v\n", state.Mods)
	fmt.Printf("  base:     %v\n", state.BaseMods)
	fmt.Printf("  latched:  %v\n", state.LatchedMods)
	fmt.Printf("  locked:   %v\n", state.LockedMods)
	fmt.Printf("  group:    %d (locked %d)\n", state.Group, state.LockedGroup)
	fmt.Printf("  buttons:  0x%x\n", state.PtrBtnState)

	ctrls, err := conn.Controls()
	if err != nil {
		fmt.Fprintf(os.Stderr, "xkb-probe: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\ncontrols:\n")
	fmt.Printf("  enabled:  %v\n", ctrls.EnabledControls)
	fmt.Printf("  repeat:   delay %dms, interval %dms\n", ctrls.RepeatDelay, ctrls.RepeatInterval)
	fmt.Printf("  slow keys delay: %dms\n", ctrls.SlowKeysDelay)
	fmt.Printf("  debounce delay:  %dms\n", ctrls.DebounceDelay)
	fmt.Printf("  accessx timeout: %ds\n", ctrls.AccessXTimeout)

	if !*watch {
		return
	}

	if err := conn.Subscribe(x11.AllEventsMask); err != nil {
		fmt.Fprintf(os.Stderr, "xkb-probe: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nwatching XKB events, Ctrl+C to quit:\n")
	for {
		ev, err := conn.WaitEvent()
		if err != nil {
			fmt.Fprintf(os.Stderr, "xkb-probe: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(ev)
	}
}
