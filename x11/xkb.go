package x11

import (
	"errors"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Extension name as registered with the X server
const extName = "XKEYBOARD"

// Request minor opcodes
const (
	opUseExtension = 0
	opSelectEvents = 1
	opGetState     = 4
	opGetControls  = 6
)

func init() {
	xgb.NewExtEventFuncs[extName] = map[int]xgb.NewEventFun{0: newEvent}
	xgb.NewExtErrorFuncs[extName] = map[int]xgb.NewErrorFun{0: KeyboardErrorNew}
}

// Init negotiates the XKB extension on the connection and registers its
// event and error decoders. Every other request in this package panics
// until Init has succeeded.
func Init(c *xgb.Conn) error {
	reply, err := xproto.QueryExtension(c, uint16(len(extName)), extName).Reply()
	if err != nil {
		return err
	}
	if !reply.Present {
		return errors.New("XKEYBOARD extension is not present on the server")
	}

	c.ExtLock.Lock()
	c.Extensions[extName] = reply.MajorOpcode
	c.ExtLock.Unlock()

	for evNum, fun := range xgb.NewExtEventFuncs[extName] {
		xgb.NewEventFuncs[int(reply.FirstEvent)+evNum] = fun
	}
	for errNum, fun := range xgb.NewExtErrorFuncs[extName] {
		xgb.NewErrorFuncs[int(reply.FirstError)+errNum] = fun
	}
	return nil
}

// extOpcode returns the major opcode assigned to the extension
func extOpcode(c *xgb.Conn, request string) byte {
	c.ExtLock.RLock()
	defer c.ExtLock.RUnlock()
	op, ok := c.Extensions[extName]
	if !ok {
		panic("cannot issue request '" + request + "' on an uninitialized XKEYBOARD extension; call x11.Init first")
	}
	return op
}

// UseExtensionCookie is a cookie for a UseExtension request
type UseExtensionCookie struct {
	*xgb.Cookie
}

// UseExtension asks the server to enable XKB semantics on this
// connection, announcing the protocol version the client speaks
func UseExtension(c *xgb.Conn, wantedMajor, wantedMinor uint16) UseExtensionCookie {
	cookie := c.NewCookie(true, true)
	c.NewRequest(useExtensionRequest(extOpcode(c, "UseExtension"), wantedMajor, wantedMinor), cookie)
	return UseExtensionCookie{cookie}
}

// UseExtensionReply is the answer to a UseExtension request
type UseExtensionReply struct {
	Sequence    uint16
	Length      uint32
	Supported   bool
	ServerMajor uint16
	ServerMinor uint16
}

// Reply blocks until the reply or error for the request arrives
func (cook UseExtensionCookie) Reply() (*UseExtensionReply, error) {
	buf, err := cook.Cookie.Reply()
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	return useExtensionReply(buf), nil
}

func useExtensionReply(buf []byte) *UseExtensionReply {
	v := new(UseExtensionReply)
	v.Supported = buf[1] == 1
	v.Sequence = xgb.Get16(buf[2:])
	v.Length = xgb.Get32(buf[4:])
	v.ServerMajor = xgb.Get16(buf[8:])
	v.ServerMinor = xgb.Get16(buf[10:])
	return v
}

func useExtensionRequest(opcode byte, wantedMajor, wantedMinor uint16) []byte {
	size := 8
	buf := make([]byte, size)

	buf[0] = opcode
	buf[1] = opUseExtension
	xgb.Put16(buf[2:], uint16(size/4))
	xgb.Put16(buf[4:], wantedMajor)
	xgb.Put16(buf[6:], wantedMinor)

	return buf
}

// SelectEventsCookie is a cookie for a SelectEvents request
type SelectEventsCookie struct {
	*xgb.Cookie
}

// SelectEvents changes which XKB event categories the server delivers
// on this connection. Only the detail-free form is implemented: every
// category in affectWhich must be fully cleared or fully selected, so
// affectWhich must be covered by clear|selectAll.
func SelectEvents(c *xgb.Conn, deviceSpec DeviceSpec, affectWhich, clear, selectAll EventMask) SelectEventsCookie {
	cookie := c.NewCookie(false, false)
	c.NewRequest(selectEventsRequest(extOpcode(c, "SelectEvents"), deviceSpec, affectWhich, clear, selectAll), cookie)
	return SelectEventsCookie{cookie}
}

// SelectEventsChecked is like SelectEvents but the server confirms the
// request, making any error available via Check
func SelectEventsChecked(c *xgb.Conn, deviceSpec DeviceSpec, affectWhich, clear, selectAll EventMask) SelectEventsCookie {
	cookie := c.NewCookie(true, false)
	c.NewRequest(selectEventsRequest(extOpcode(c, "SelectEvents"), deviceSpec, affectWhich, clear, selectAll), cookie)
	return SelectEventsCookie{cookie}
}

// Check blocks until the server confirms the request or returns its error
func (cook SelectEventsCookie) Check() error {
	return cook.Cookie.Check()
}

func selectEventsRequest(opcode byte, deviceSpec DeviceSpec, affectWhich, clear, selectAll EventMask) []byte {
	if affectWhich&^(clear|selectAll) != 0 {
		panic("SelectEvents: detail masks are not implemented; affectWhich must be covered by clear|selectAll")
	}

	size := 16
	buf := make([]byte, size)

	buf[0] = opcode
	buf[1] = opSelectEvents
	xgb.Put16(buf[2:], uint16(size/4))
	xgb.Put16(buf[4:], uint16(deviceSpec))
	xgb.Put16(buf[6:], uint16(affectWhich))
	xgb.Put16(buf[8:], uint16(clear))
	xgb.Put16(buf[10:], uint16(selectAll))
	// affectMap and map stay zero, leaving map part selection alone;
	// no detail lists follow in the detail-free form

	return buf
}

// GetStateCookie is a cookie for a GetState request
type GetStateCookie struct {
	*xgb.Cookie
}

// GetState queries the current modifier and group state of a device
func GetState(c *xgb.Conn, deviceSpec DeviceSpec) GetStateCookie {
	cookie := c.NewCookie(true, true)
	c.NewRequest(getStateRequest(extOpcode(c, "GetState"), deviceSpec), cookie)
	return GetStateCookie{cookie}
}

// GetStateReply is the answer to a GetState request
type GetStateReply struct {
	Sequence uint16
	Length   uint32
	DeviceID uint8

	Mods        ModMask
	BaseMods    ModMask
	LatchedMods ModMask
	LockedMods  ModMask

	Group        uint8
	LockedGroup  uint8
	BaseGroup    int16
	LatchedGroup int16

	CompatState      ModMask
	GrabMods         ModMask
	CompatGrabMods   ModMask
	LookupMods       ModMask
	CompatLookupMods ModMask
	PtrBtnState      uint16
}

// Reply blocks until the reply or error for the request arrives
func (cook GetStateCookie) Reply() (*GetStateReply, error) {
	buf, err := cook.Cookie.Reply()
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	return getStateReply(buf), nil
}

func getStateReply(buf []byte) *GetStateReply {
	v := new(GetStateReply)
	v.DeviceID = buf[1]
	v.Sequence = xgb.Get16(buf[2:])
	v.Length = xgb.Get32(buf[4:])
	v.Mods = ModMask(buf[8])
	v.BaseMods = ModMask(buf[9])
	v.LatchedMods = ModMask(buf[10])
	v.LockedMods = ModMask(buf[11])
	v.Group = buf[12]
	v.LockedGroup = buf[13]
	v.BaseGroup = int16(xgb.Get16(buf[14:]))
	v.LatchedGroup = int16(xgb.Get16(buf[16:]))
	v.CompatState = ModMask(buf[18])
	v.GrabMods = ModMask(buf[19])
	v.CompatGrabMods = ModMask(buf[20])
	v.LookupMods = ModMask(buf[21])
	v.CompatLookupMods = ModMask(buf[22])
	v.PtrBtnState = xgb.Get16(buf[24:])
	return v
}

func getStateRequest(opcode byte, deviceSpec DeviceSpec) []byte {
	size := 8
	buf := make([]byte, size)

	buf[0] = opcode
	buf[1] = opGetState
	xgb.Put16(buf[2:], uint16(size/4))
	xgb.Put16(buf[4:], uint16(deviceSpec))
	// 2 bytes padding

	return buf
}

// GetControlsCookie is a cookie for a GetControls request
type GetControlsCookie struct {
	*xgb.Cookie
}

// GetControls queries the full controls block of a device, including
// which boolean controls are currently enabled
func GetControls(c *xgb.Conn, deviceSpec DeviceSpec) GetControlsCookie {
	cookie := c.NewCookie(true, true)
	c.NewRequest(getControlsRequest(extOpcode(c, "GetControls"), deviceSpec), cookie)
	return GetControlsCookie{cookie}
}

// GetControlsReply is the answer to a GetControls request
type GetControlsReply struct {
	Sequence uint16
	Length   uint32
	DeviceID uint8

	MouseKeysDfltBtn   uint8
	NumGroups          uint8
	GroupsWrap         uint8
	InternalMods       ModMask
	IgnoreLockMods     ModMask
	InternalRealMods   ModMask
	IgnoreLockRealMods ModMask
	InternalVMods      uint16
	IgnoreLockVMods    uint16

	RepeatDelay    uint16
	RepeatInterval uint16
	SlowKeysDelay  uint16
	DebounceDelay  uint16

	MouseKeysDelay     uint16
	MouseKeysInterval  uint16
	MouseKeysTimeToMax uint16
	MouseKeysMaxSpeed  uint16
	MouseKeysCurve     int16

	AccessXOptions              uint16
	AccessXTimeout              uint16
	AccessXTimeoutOptionsMask   uint16
	AccessXTimeoutOptionsValues uint16
	AccessXTimeoutMask          ControlMask
	AccessXTimeoutValues        ControlMask

	EnabledControls ControlMask
	PerKeyRepeat    [32]byte
}

// Reply blocks until the reply or error for the request arrives
func (cook GetControlsCookie) Reply() (*GetControlsReply, error) {
	buf, err := cook.Cookie.Reply()
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	return getControlsReply(buf), nil
}

func getControlsReply(buf []byte) *GetControlsReply {
	v := new(GetControlsReply)
	v.DeviceID = buf[1]
	v.Sequence = xgb.Get16(buf[2:])
	v.Length = xgb.Get32(buf[4:])
	v.MouseKeysDfltBtn = buf[8]
	v.NumGroups = buf[9]
	v.GroupsWrap = buf[10]
	v.InternalMods = ModMask(buf[11])
	v.IgnoreLockMods = ModMask(buf[12])
	v.InternalRealMods = ModMask(buf[13])
	v.IgnoreLockRealMods = ModMask(buf[14])
	v.InternalVMods = xgb.Get16(buf[16:])
	v.IgnoreLockVMods = xgb.Get16(buf[18:])
	v.RepeatDelay = xgb.Get16(buf[20:])
	v.RepeatInterval = xgb.Get16(buf[22:])
	v.SlowKeysDelay = xgb.Get16(buf[24:])
	v.DebounceDelay = xgb.Get16(buf[26:])
	v.MouseKeysDelay = xgb.Get16(buf[28:])
	v.MouseKeysInterval = xgb.Get16(buf[30:])
	v.MouseKeysTimeToMax = xgb.Get16(buf[32:])
	v.MouseKeysMaxSpeed = xgb.Get16(buf[34:])
	v.MouseKeysCurve = int16(xgb.Get16(buf[36:]))
	v.AccessXOptions = xgb.Get16(buf[38:])
	v.AccessXTimeout = xgb.Get16(buf[40:])
	v.AccessXTimeoutOptionsMask = xgb.Get16(buf[42:])
	v.AccessXTimeoutOptionsValues = xgb.Get16(buf[44:])
	v.AccessXTimeoutMask = ControlMask(xgb.Get32(buf[48:]))
	v.AccessXTimeoutValues = ControlMask(xgb.Get32(buf[52:]))
	v.EnabledControls = ControlMask(xgb.Get32(buf[56:]))
	copy(v.PerKeyRepeat[:], buf[60:92])
	return v
}

func getControlsRequest(opcode byte, deviceSpec DeviceSpec) []byte {
	size := 8
	buf := make([]byte, size)

	buf[0] = opcode
	buf[1] = opGetControls
	xgb.Put16(buf[2:], uint16(size/4))
	xgb.Put16(buf[4:], uint16(deviceSpec))
	// 2 bytes padding

	return buf
}
