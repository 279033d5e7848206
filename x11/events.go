package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// XKB event type codes, carried at byte 1 of every extension event
const (
	NewKeyboardNotify     byte = 0
	MapNotify             byte = 1
	StateNotify           byte = 2
	ControlsNotify        byte = 3
	IndicatorStateNotify  byte = 4
	IndicatorMapNotify    byte = 5
	NamesNotify           byte = 6
	CompatMapNotify       byte = 7
	BellNotify            byte = 8
	ActionMessage         byte = 9
	AccessXNotify         byte = 10
	ExtensionDeviceNotify byte = 11
)

// Event is implemented by every XKB event decoded by this package
type Event interface {
	xgb.Event
	XkbType() byte
}

// newEvent decodes a wire event delivered on the extension's event
// code. Byte 1 selects the concrete type; types the status loop never
// subscribes to decode as GenericEvent.
func newEvent(buf []byte) xgb.Event {
	switch buf[1] {
	case StateNotify:
		return newStateNotifyEvent(buf)
	case ControlsNotify:
		return newControlsNotifyEvent(buf)
	case AccessXNotify:
		return newAccessXNotifyEvent(buf)
	}
	return newGenericEvent(buf)
}

// StateNotifyEvent reports a change of the keyboard's modifier or
// group state
type StateNotifyEvent struct {
	Sequence uint16
	Time     xproto.Timestamp
	DeviceID uint8

	Mods        ModMask
	BaseMods    ModMask
	LatchedMods ModMask
	LockedMods  ModMask

	Group        uint8
	BaseGroup    int16
	LatchedGroup int16
	LockedGroup  uint8

	CompatState      ModMask
	GrabMods         ModMask
	CompatGrabMods   ModMask
	LookupMods       ModMask
	CompatLookupMods ModMask
	PtrBtnState      uint16

	Changed      uint16
	Keycode      xproto.Keycode
	EventType    uint8
	RequestMajor uint8
	RequestMinor uint8
}

func newStateNotifyEvent(buf []byte) StateNotifyEvent {
	v := StateNotifyEvent{}
	v.Sequence = xgb.Get16(buf[2:])
	v.Time = xproto.Timestamp(xgb.Get32(buf[4:]))
	v.DeviceID = buf[8]
	v.Mods = ModMask(buf[9])
	v.BaseMods = ModMask(buf[10])
	v.LatchedMods = ModMask(buf[11])
	v.LockedMods = ModMask(buf[12])
	v.Group = buf[13]
	v.BaseGroup = int16(xgb.Get16(buf[14:]))
	v.LatchedGroup = int16(xgb.Get16(buf[16:]))
	v.LockedGroup = buf[18]
	v.CompatState = ModMask(buf[19])
	v.GrabMods = ModMask(buf[20])
	v.CompatGrabMods = ModMask(buf[21])
	v.LookupMods = ModMask(buf[22])
	v.CompatLookupMods = ModMask(buf[23])
	v.PtrBtnState = xgb.Get16(buf[24:])
	v.Changed = xgb.Get16(buf[26:])
	v.Keycode = xproto.Keycode(buf[28])
	v.EventType = buf[29]
	v.RequestMajor = buf[30]
	v.RequestMinor = buf[31]
	return v
}

// XkbType returns the XKB event type code
func (v StateNotifyEvent) XkbType() byte {
	return StateNotify
}

// Bytes writes the wire form of the event. Byte 0 stays zero; the
// server fills it with the extension's event base on delivery.
func (v StateNotifyEvent) Bytes() []byte {
	buf := make([]byte, 32)
	buf[1] = StateNotify
	xgb.Put16(buf[2:], v.Sequence)
	xgb.Put32(buf[4:], uint32(v.Time))
	buf[8] = v.DeviceID
	buf[9] = byte(v.Mods)
	buf[10] = byte(v.BaseMods)
	buf[11] = byte(v.LatchedMods)
	buf[12] = byte(v.LockedMods)
	buf[13] = v.Group
	xgb.Put16(buf[14:], uint16(v.BaseGroup))
	xgb.Put16(buf[16:], uint16(v.LatchedGroup))
	buf[18] = v.LockedGroup
	buf[19] = byte(v.CompatState)
	buf[20] = byte(v.GrabMods)
	buf[21] = byte(v.CompatGrabMods)
	buf[22] = byte(v.LookupMods)
	buf[23] = byte(v.CompatLookupMods)
	xgb.Put16(buf[24:], v.PtrBtnState)
	xgb.Put16(buf[26:], v.Changed)
	buf[28] = byte(v.Keycode)
	buf[29] = v.EventType
	buf[30] = v.RequestMajor
	buf[31] = v.RequestMinor
	return buf
}

func (v StateNotifyEvent) String() string {
	return fmt.Sprintf("StateNotify {Sequence: %d, Mods: %v, BaseMods: %v, LatchedMods: %v, LockedMods: %v, Keycode: %d}",
		v.Sequence, v.Mods, v.BaseMods, v.LatchedMods, v.LockedMods, v.Keycode)
}

// ControlsNotifyEvent reports a change of the keyboard's controls,
// including boolean controls being switched on or off
type ControlsNotifyEvent struct {
	Sequence uint16
	Time     xproto.Timestamp
	DeviceID uint8

	NumGroups             uint8
	ChangedControls       ControlMask
	EnabledControls       ControlMask
	EnabledControlChanges ControlMask

	Keycode      xproto.Keycode
	EventType    uint8
	RequestMajor uint8
	RequestMinor uint8
}

func newControlsNotifyEvent(buf []byte) ControlsNotifyEvent {
	v := ControlsNotifyEvent{}
	v.Sequence = xgb.Get16(buf[2:])
	v.Time = xproto.Timestamp(xgb.Get32(buf[4:]))
	v.DeviceID = buf[8]
	v.NumGroups = buf[9]
	v.ChangedControls = ControlMask(xgb.Get32(buf[12:]))
	v.EnabledControls = ControlMask(xgb.Get32(buf[16:]))
	v.EnabledControlChanges = ControlMask(xgb.Get32(buf[20:]))
	v.Keycode = xproto.Keycode(buf[24])
	v.EventType = buf[25]
	v.RequestMajor = buf[26]
	v.RequestMinor = buf[27]
	return v
}

// XkbType returns the XKB event type code
func (v ControlsNotifyEvent) XkbType() byte {
	return ControlsNotify
}

// Bytes writes the wire form of the event. Byte 0 stays zero; the
// server fills it with the extension's event base on delivery.
func (v ControlsNotifyEvent) Bytes() []byte {
	buf := make([]byte, 32)
	buf[1] = ControlsNotify
	xgb.Put16(buf[2:], v.Sequence)
	xgb.Put32(buf[4:], uint32(v.Time))
	buf[8] = v.DeviceID
	buf[9] = v.NumGroups
	xgb.Put32(buf[12:], uint32(v.ChangedControls))
	xgb.Put32(buf[16:], uint32(v.EnabledControls))
	xgb.Put32(buf[20:], uint32(v.EnabledControlChanges))
	buf[24] = byte(v.Keycode)
	buf[25] = v.EventType
	buf[26] = v.RequestMajor
	buf[27] = v.RequestMinor
	return buf
}

func (v ControlsNotifyEvent) String() string {
	return fmt.Sprintf("ControlsNotify {Sequence: %d, Changed: %v, Enabled: %v}",
		v.Sequence, v.ChangedControls, v.EnabledControls)
}

// AccessXNotifyEvent reports AccessX feedback such as a slow key being
// accepted or rejected
type AccessXNotifyEvent struct {
	Sequence uint16
	Time     xproto.Timestamp
	DeviceID uint8

	Keycode       xproto.Keycode
	Detail        uint16
	SlowKeysDelay uint16
	DebounceDelay uint16
}

func newAccessXNotifyEvent(buf []byte) AccessXNotifyEvent {
	v := AccessXNotifyEvent{}
	v.Sequence = xgb.Get16(buf[2:])
	v.Time = xproto.Timestamp(xgb.Get32(buf[4:]))
	v.DeviceID = buf[8]
	v.Keycode = xproto.Keycode(buf[9])
	v.Detail = xgb.Get16(buf[10:])
	v.SlowKeysDelay = xgb.Get16(buf[12:])
	v.DebounceDelay = xgb.Get16(buf[14:])
	return v
}

// XkbType returns the XKB event type code
func (v AccessXNotifyEvent) XkbType() byte {
	return AccessXNotify
}

// Bytes writes the wire form of the event. Byte 0 stays zero; the
// server fills it with the extension's event base on delivery.
func (v AccessXNotifyEvent) Bytes() []byte {
	buf := make([]byte, 32)
	buf[1] = AccessXNotify
	xgb.Put16(buf[2:], v.Sequence)
	xgb.Put32(buf[4:], uint32(v.Time))
	buf[8] = v.DeviceID
	buf[9] = byte(v.Keycode)
	xgb.Put16(buf[10:], v.Detail)
	xgb.Put16(buf[12:], v.SlowKeysDelay)
	xgb.Put16(buf[14:], v.DebounceDelay)
	return buf
}

func (v AccessXNotifyEvent) String() string {
	return fmt.Sprintf("AccessXNotify {Sequence: %d, Keycode: %d, Detail: %s}",
		v.Sequence, v.Keycode, axnName(v.Detail))
}

// GenericEvent carries an XKB event of a type this package does not
// decode, preserving its raw wire form
type GenericEvent struct {
	Sequence uint16
	Type     byte
	Data     []byte
}

func newGenericEvent(buf []byte) GenericEvent {
	v := GenericEvent{}
	v.Sequence = xgb.Get16(buf[2:])
	v.Type = buf[1]
	v.Data = make([]byte, len(buf))
	copy(v.Data, buf)
	return v
}

// XkbType returns the XKB event type code
func (v GenericEvent) XkbType() byte {
	return v.Type
}

// Bytes returns a copy of the raw wire form
func (v GenericEvent) Bytes() []byte {
	buf := make([]byte, len(v.Data))
	copy(buf, v.Data)
	return buf
}

func (v GenericEvent) String() string {
	return fmt.Sprintf("XkbEvent {Type: %d, Sequence: %d}", v.Type, v.Sequence)
}
