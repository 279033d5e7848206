package status

import (
	"testing"

	"github.com/lixenwraith/keystatus/x11"
)

func TestRenderLine(t *testing.T) {
	tests := []struct {
		name    string
		latched x11.ModMask
		locked  x11.ModMask
		ctrls   x11.ControlMask
		want    string
	}{
		{"idle", 0, 0, 0, "\n"},
		{"latched shift", x11.ModShift, 0, 0, "shift\n"},
		{"locked shift", 0, x11.ModShift, 0, "SHIFT\n"},
		{"latched wins over locked", x11.ModShift, x11.ModShift, 0, "shift\n"},
		{"all latched", x11.ModShift | x11.ModCtrl | x11.Mod1 | x11.Mod4, 0, 0, "shift ctrl alt super\n"},
		{"all locked", 0, x11.ModShift | x11.ModCtrl | x11.Mod1 | x11.Mod4, 0, "SHIFT CTRL ALT SUPER\n"},
		{"mixed latched and locked", x11.ModCtrl, x11.Mod1, x11.StickyKeysMask, "ctrl ALT sticky\n"},
		{"super only", 0, x11.Mod4, 0, "SUPER\n"},
		{"sticky only", 0, 0, x11.StickyKeysMask, "sticky\n"},
		{"accessx only", 0, 0, x11.AccessXKeysMask, "accessx\n"},
		{"sticky before accessx", 0, 0, x11.StickyKeysMask | x11.AccessXKeysMask, "sticky accessx\n"},
		{"accessibility after modifiers", 0, x11.ModShift, x11.StickyKeysMask | x11.AccessXKeysMask, "SHIFT sticky accessx\n"},
		{"untracked modifiers ignored", x11.ModLock | x11.Mod2, x11.Mod3 | x11.Mod5, 0, "\n"},
		{"unrelated controls ignored", 0, 0, x11.RepeatKeysMask | x11.MouseKeysMask, "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &x11.GetStateReply{LatchedMods: tt.latched, LockedMods: tt.locked}
			ctrls := &x11.GetControlsReply{EnabledControls: tt.ctrls}
			got := string(renderLine(state, ctrls))
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
