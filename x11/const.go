package x11

import (
	"fmt"
	"strings"
)

// Protocol version implemented by this package
const (
	MajorVersion = 1
	MinorVersion = 0
)

// DeviceSpec selects the keyboard device a request applies to
type DeviceSpec uint16

// UseCoreKbd addresses the server's core keyboard device
const UseCoreKbd DeviceSpec = 0x100

// ModMask is a core protocol modifier bitmask
type ModMask uint8

// Modifier bits as reported in state replies and events
const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << 0
	ModLock  ModMask = 1 << 1
	ModCtrl  ModMask = 1 << 2
	Mod1     ModMask = 1 << 3
	Mod2     ModMask = 1 << 4
	Mod3     ModMask = 1 << 5
	Mod4     ModMask = 1 << 6
	Mod5     ModMask = 1 << 7
)

var modNames = [8]string{"Shift", "Lock", "Ctrl", "Mod1", "Mod2", "Mod3", "Mod4", "Mod5"}

// String returns the set bits joined with |, or "None"
func (m ModMask) String() string {
	if m == 0 {
		return "None"
	}
	names := make([]string, 0, 8)
	for i, name := range modNames {
		if m&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// EventMask selects XKB event categories in a SelectEvents request
type EventMask uint16

const (
	NewKeyboardNotifyMask     EventMask = 1 << 0
	MapNotifyMask             EventMask = 1 << 1
	StateNotifyMask           EventMask = 1 << 2
	ControlsNotifyMask        EventMask = 1 << 3
	IndicatorStateNotifyMask  EventMask = 1 << 4
	IndicatorMapNotifyMask    EventMask = 1 << 5
	NamesNotifyMask           EventMask = 1 << 6
	CompatMapNotifyMask       EventMask = 1 << 7
	BellNotifyMask            EventMask = 1 << 8
	ActionMessageMask         EventMask = 1 << 9
	AccessXNotifyMask         EventMask = 1 << 10
	ExtensionDeviceNotifyMask EventMask = 1 << 11

	AllEventsMask EventMask = 0xfff
)

// ControlMask is a bitmask over the XKB controls
type ControlMask uint32

// Boolean controls occupy the low 13 bits; the remaining named bits
// only select control sections in requests and change reports
const (
	RepeatKeysMask      ControlMask = 1 << 0
	SlowKeysMask        ControlMask = 1 << 1
	BounceKeysMask      ControlMask = 1 << 2
	StickyKeysMask      ControlMask = 1 << 3
	MouseKeysMask       ControlMask = 1 << 4
	MouseKeysAccelMask  ControlMask = 1 << 5
	AccessXKeysMask     ControlMask = 1 << 6
	AccessXTimeoutMask  ControlMask = 1 << 7
	AccessXFeedbackMask ControlMask = 1 << 8
	AudibleBellMask     ControlMask = 1 << 9
	Overlay1Mask        ControlMask = 1 << 10
	Overlay2Mask        ControlMask = 1 << 11
	IgnoreGroupLockMask ControlMask = 1 << 12

	GroupsWrapMask      ControlMask = 1 << 27
	InternalModsMask    ControlMask = 1 << 28
	IgnoreLockModsMask  ControlMask = 1 << 29
	PerKeyRepeatMask    ControlMask = 1 << 30
	ControlsEnabledMask ControlMask = 1 << 31

	AllBooleanCtrlsMask ControlMask = 0x1fff
)

// AccessX event details, carried in AccessXNotifyEvent.Detail
const (
	AXNSlowKeyPress    uint16 = 0
	AXNSlowKeyAccept   uint16 = 1
	AXNSlowKeyReject   uint16 = 2
	AXNSlowKeyRelease  uint16 = 3
	AXNBounceKeyAccept uint16 = 4
	AXNBounceKeyReject uint16 = 5
	AXNAccessXWarning  uint16 = 6
)

var axnNames = [7]string{
	"SlowKeyPress", "SlowKeyAccept", "SlowKeyReject", "SlowKeyRelease",
	"BounceKeyAccept", "BounceKeyReject", "AccessXWarning",
}

// axnName returns the name of an AccessX detail code
func axnName(detail uint16) string {
	if int(detail) < len(axnNames) {
		return axnNames[detail]
	}
	return fmt.Sprintf("Detail%d", detail)
}

var controlNames = map[ControlMask]string{
	RepeatKeysMask:      "RepeatKeys",
	SlowKeysMask:        "SlowKeys",
	BounceKeysMask:      "BounceKeys",
	StickyKeysMask:      "StickyKeys",
	MouseKeysMask:       "MouseKeys",
	MouseKeysAccelMask:  "MouseKeysAccel",
	AccessXKeysMask:     "AccessXKeys",
	AccessXTimeoutMask:  "AccessXTimeout",
	AccessXFeedbackMask: "AccessXFeedback",
	AudibleBellMask:     "AudibleBell",
	Overlay1Mask:        "Overlay1",
	Overlay2Mask:        "Overlay2",
	IgnoreGroupLockMask: "IgnoreGroupLock",
	GroupsWrapMask:      "GroupsWrap",
	InternalModsMask:    "InternalMods",
	IgnoreLockModsMask:  "IgnoreLockMods",
	PerKeyRepeatMask:    "PerKeyRepeat",
	ControlsEnabledMask: "ControlsEnabled",
}

// String returns the named set bits joined with |, any unnamed bits as
// a hex remainder, or "None"
func (m ControlMask) String() string {
	if m == 0 {
		return "None"
	}
	names := make([]string, 0, 8)
	rest := m
	for bit := ControlMask(1); bit != 0; bit <<= 1 {
		if m&bit == 0 {
			continue
		}
		if name, ok := controlNames[bit]; ok {
			names = append(names, name)
			rest &^= bit
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}
