package x11

import (
	"testing"

	"github.com/jezek/xgb"
)

func TestUseExtensionRequestEncoding(t *testing.T) {
	buf := useExtensionRequest(135, MajorVersion, MinorVersion)

	if len(buf) != 8 {
		t.Fatalf("Expected 8 byte request, got %d", len(buf))
	}
	if buf[0] != 135 {
		t.Errorf("Expected major opcode 135, got %d", buf[0])
	}
	if buf[1] != opUseExtension {
		t.Errorf("Expected minor opcode %d, got %d", opUseExtension, buf[1])
	}
	if got := xgb.Get16(buf[2:]); got != 2 {
		t.Errorf("Expected request length 2, got %d", got)
	}
	if got := xgb.Get16(buf[4:]); got != MajorVersion {
		t.Errorf("Expected wanted major %d, got %d", MajorVersion, got)
	}
	if got := xgb.Get16(buf[6:]); got != MinorVersion {
		t.Errorf("Expected wanted minor %d, got %d", MinorVersion, got)
	}
}

func TestQueryRequestEncoding(t *testing.T) {
	tests := []struct {
		name  string
		build func(byte, DeviceSpec) []byte
		minor byte
	}{
		{"GetState", getStateRequest, opGetState},
		{"GetControls", getControlsRequest, opGetControls},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := tt.build(135, UseCoreKbd)

			if len(buf) != 8 {
				t.Fatalf("Expected 8 byte request, got %d", len(buf))
			}
			if buf[0] != 135 {
				t.Errorf("Expected major opcode 135, got %d", buf[0])
			}
			if buf[1] != tt.minor {
				t.Errorf("Expected minor opcode %d, got %d", tt.minor, buf[1])
			}
			if got := xgb.Get16(buf[2:]); got != 2 {
				t.Errorf("Expected request length 2, got %d", got)
			}
			if got := DeviceSpec(xgb.Get16(buf[4:])); got != UseCoreKbd {
				t.Errorf("Expected device spec 0x%x, got 0x%x", uint16(UseCoreKbd), uint16(got))
			}
		})
	}
}

func TestSelectEventsRequestEncoding(t *testing.T) {
	mask := StateNotifyMask | ControlsNotifyMask | AccessXNotifyMask
	buf := selectEventsRequest(135, UseCoreKbd, mask, 0, mask)

	if len(buf) != 16 {
		t.Fatalf("Expected 16 byte request, got %d", len(buf))
	}
	if buf[1] != opSelectEvents {
		t.Errorf("Expected minor opcode %d, got %d", opSelectEvents, buf[1])
	}
	if got := xgb.Get16(buf[2:]); got != 4 {
		t.Errorf("Expected request length 4, got %d", got)
	}
	if got := DeviceSpec(xgb.Get16(buf[4:])); got != UseCoreKbd {
		t.Errorf("Expected device spec 0x%x, got 0x%x", uint16(UseCoreKbd), uint16(got))
	}
	if got := EventMask(xgb.Get16(buf[6:])); got != mask {
		t.Errorf("Expected affectWhich %v, got %v", mask, got)
	}
	if got := xgb.Get16(buf[8:]); got != 0 {
		t.Errorf("Expected empty clear mask, got 0x%x", got)
	}
	if got := EventMask(xgb.Get16(buf[10:])); got != mask {
		t.Errorf("Expected selectAll %v, got %v", mask, got)
	}
	// Map part selection stays untouched
	if got := xgb.Get16(buf[12:]); got != 0 {
		t.Errorf("Expected empty affectMap, got 0x%x", got)
	}
	if got := xgb.Get16(buf[14:]); got != 0 {
		t.Errorf("Expected empty map, got 0x%x", got)
	}
}

func TestSelectEventsRejectsDetailMasks(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic when affectWhich is not covered by clear|selectAll")
		}
	}()
	selectEventsRequest(135, UseCoreKbd, StateNotifyMask|BellNotifyMask, 0, StateNotifyMask)
}

func TestUseExtensionReplyDecode(t *testing.T) {
	tests := []struct {
		name      string
		supported byte
		want      bool
	}{
		{"supported", 1, true},
		{"unsupported", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 32)
			buf[0] = 1
			buf[1] = tt.supported
			xgb.Put16(buf[2:], 7)
			xgb.Put16(buf[8:], 1)
			xgb.Put16(buf[10:], 0)

			v := useExtensionReply(buf)
			if v.Supported != tt.want {
				t.Errorf("Expected supported=%v, got %v", tt.want, v.Supported)
			}
			if v.Sequence != 7 {
				t.Errorf("Expected sequence 7, got %d", v.Sequence)
			}
			if v.ServerMajor != 1 || v.ServerMinor != 0 {
				t.Errorf("Expected server version 1.0, got %d.%d", v.ServerMajor, v.ServerMinor)
			}
		})
	}
}

func TestGetStateReplyDecode(t *testing.T) {
	buf := make([]byte, 32)
	buf[0] = 1
	buf[1] = 3 // deviceID
	xgb.Put16(buf[2:], 42)
	buf[8] = byte(ModShift | ModCtrl)
	buf[9] = byte(ModCtrl)
	buf[10] = byte(ModShift)
	buf[11] = byte(ModLock)
	buf[12] = 1 // group
	buf[13] = 2 // locked group
	xgb.Put16(buf[14:], 0xffff)
	xgb.Put16(buf[16:], 1)
	buf[18] = byte(ModShift)
	buf[19] = byte(ModCtrl)
	buf[20] = byte(Mod1)
	buf[21] = byte(Mod4)
	buf[22] = byte(Mod5)
	xgb.Put16(buf[24:], 0x500)

	v := getStateReply(buf)
	if v.DeviceID != 3 {
		t.Errorf("Expected device 3, got %d", v.DeviceID)
	}
	if v.Sequence != 42 {
		t.Errorf("Expected sequence 42, got %d", v.Sequence)
	}
	if v.Mods != ModShift|ModCtrl {
		t.Errorf("Expected mods %v, got %v", ModShift|ModCtrl, v.Mods)
	}
	if v.BaseMods != ModCtrl {
		t.Errorf("Expected base mods %v, got %v", ModCtrl, v.BaseMods)
	}
	if v.LatchedMods != ModShift {
		t.Errorf("Expected latched mods %v, got %v", ModShift, v.LatchedMods)
	}
	if v.LockedMods != ModLock {
		t.Errorf("Expected locked mods %v, got %v", ModLock, v.LockedMods)
	}
	if v.Group != 1 || v.LockedGroup != 2 {
		t.Errorf("Expected group 1 locked 2, got %d locked %d", v.Group, v.LockedGroup)
	}
	if v.BaseGroup != -1 {
		t.Errorf("Expected base group -1, got %d", v.BaseGroup)
	}
	if v.LatchedGroup != 1 {
		t.Errorf("Expected latched group 1, got %d", v.LatchedGroup)
	}
	if v.GrabMods != ModCtrl {
		t.Errorf("Expected grab mods %v, got %v", ModCtrl, v.GrabMods)
	}
	if v.PtrBtnState != 0x500 {
		t.Errorf("Expected pointer buttons 0x500, got 0x%x", v.PtrBtnState)
	}
}

func TestGetControlsReplyDecode(t *testing.T) {
	buf := make([]byte, 92)
	buf[0] = 1
	buf[1] = 3 // deviceID
	xgb.Put16(buf[2:], 9)
	xgb.Put32(buf[4:], 15)
	buf[8] = 2  // mouse keys default button
	buf[9] = 4  // groups
	buf[11] = byte(ModShift)
	xgb.Put16(buf[20:], 660) // repeat delay
	xgb.Put16(buf[22:], 25)  // repeat interval
	xgb.Put16(buf[24:], 300) // slow keys delay
	xgb.Put16(buf[26:], 50)  // debounce delay
	xgb.Put16(buf[40:], 120) // accessx timeout
	xgb.Put32(buf[48:], uint32(StickyKeysMask|SlowKeysMask))
	xgb.Put32(buf[56:], uint32(RepeatKeysMask|StickyKeysMask|AccessXKeysMask))
	buf[60] = 0xff
	buf[91] = 0xaa

	v := getControlsReply(buf)
	if v.DeviceID != 3 {
		t.Errorf("Expected device 3, got %d", v.DeviceID)
	}
	if v.Length != 15 {
		t.Errorf("Expected length 15, got %d", v.Length)
	}
	if v.MouseKeysDfltBtn != 2 {
		t.Errorf("Expected default button 2, got %d", v.MouseKeysDfltBtn)
	}
	if v.NumGroups != 4 {
		t.Errorf("Expected 4 groups, got %d", v.NumGroups)
	}
	if v.InternalMods != ModShift {
		t.Errorf("Expected internal mods %v, got %v", ModShift, v.InternalMods)
	}
	if v.RepeatDelay != 660 || v.RepeatInterval != 25 {
		t.Errorf("Expected repeat 660/25, got %d/%d", v.RepeatDelay, v.RepeatInterval)
	}
	if v.SlowKeysDelay != 300 {
		t.Errorf("Expected slow keys delay 300, got %d", v.SlowKeysDelay)
	}
	if v.DebounceDelay != 50 {
		t.Errorf("Expected debounce delay 50, got %d", v.DebounceDelay)
	}
	if v.AccessXTimeout != 120 {
		t.Errorf("Expected accessx timeout 120, got %d", v.AccessXTimeout)
	}
	if v.AccessXTimeoutMask != StickyKeysMask|SlowKeysMask {
		t.Errorf("Expected timeout mask %v, got %v", StickyKeysMask|SlowKeysMask, v.AccessXTimeoutMask)
	}
	if v.EnabledControls != RepeatKeysMask|StickyKeysMask|AccessXKeysMask {
		t.Errorf("Expected enabled controls %v, got %v",
			RepeatKeysMask|StickyKeysMask|AccessXKeysMask, v.EnabledControls)
	}
	if v.PerKeyRepeat[0] != 0xff || v.PerKeyRepeat[31] != 0xaa {
		t.Errorf("Expected per key repeat edges 0xff/0xaa, got 0x%x/0x%x",
			v.PerKeyRepeat[0], v.PerKeyRepeat[31])
	}
}
