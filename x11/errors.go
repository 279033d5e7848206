package x11

import (
	"fmt"

	"github.com/jezek/xgb"
)

// KeyboardError is the XKB extension error, raised when a request names
// a device the server does not know or cannot use as a keyboard
type KeyboardError struct {
	Sequence    uint16
	NiceName    string
	BadValue    uint32
	MinorOpcode uint16
	MajorOpcode uint8
}

// KeyboardErrorNew decodes a Keyboard error from its wire form
func KeyboardErrorNew(buf []byte) xgb.Error {
	v := KeyboardError{}
	v.NiceName = "Keyboard"
	v.Sequence = xgb.Get16(buf[2:])
	v.BadValue = xgb.Get32(buf[4:])
	v.MinorOpcode = xgb.Get16(buf[8:])
	v.MajorOpcode = buf[10]
	return v
}

func (err KeyboardError) ImplementsError() {}

// SequenceId returns the sequence number of the failed request
func (err KeyboardError) SequenceId() uint16 {
	return err.Sequence
}

// BadId returns the device value the server rejected
func (err KeyboardError) BadId() uint32 {
	return err.BadValue
}

func (err KeyboardError) Error() string {
	return fmt.Sprintf("BadKeyboard {Device: 0x%x, MinorOpcode: %d, MajorOpcode: %d, Sequence: %d}",
		err.BadValue, err.MinorOpcode, err.MajorOpcode, err.Sequence)
}
