package status

import (
	"github.com/lixenwraith/keystatus/x11"
)

// modifierSpec maps one modifier bit to its status line tokens
type modifierSpec struct {
	bit     x11.ModMask
	latched string
	locked  string
}

// Reported modifiers in display order. A latched modifier prints
// lowercase, a locked one uppercase, latched winning when both are set.
var modifierSpecs = [...]modifierSpec{
	{x11.ModShift, "shift", "SHIFT"},
	{x11.ModCtrl, "ctrl", "CTRL"},
	{x11.Mod1, "alt", "ALT"},
	{x11.Mod4, "super", "SUPER"},
}

// appendToken grows line with a single space between tokens
func appendToken(line []byte, tok string) []byte {
	if len(line) > 0 {
		line = append(line, ' ')
	}
	return append(line, tok...)
}

// renderLine builds one newline-terminated status line from a state and
// controls snapshot. Modifier tokens come first, then "sticky" and
// "accessx" for the enabled accessibility controls. An idle keyboard
// yields a bare newline.
func renderLine(state *x11.GetStateReply, ctrls *x11.GetControlsReply) []byte {
	line := make([]byte, 0, 64)
	for _, m := range modifierSpecs {
		switch {
		case state.LatchedMods&m.bit != 0:
			line = appendToken(line, m.latched)
		case state.LockedMods&m.bit != 0:
			line = appendToken(line, m.locked)
		}
	}
	if ctrls.EnabledControls&x11.StickyKeysMask != 0 {
		line = appendToken(line, "sticky")
	}
	if ctrls.EnabledControls&x11.AccessXKeysMask != 0 {
		line = appendToken(line, "accessx")
	}
	return append(line, '\n')
}
