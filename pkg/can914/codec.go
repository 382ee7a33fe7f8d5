package can914

import (
	"errors"
	"fmt"
)

const (
	// FrameCapacity is the size of a frame buffer.
	FrameCapacity = 8
	// FrameLength is the number of meaningful bytes in a command frame.
	FrameLength = 4
)

// Field offsets in a command frame. Offset 0 is reserved.
const (
	FieldCommand  = 1
	FieldFunction = 2
	FieldValue    = 3
)

var (
	// ErrShortFrame indicates a payload shorter than FrameLength.
	ErrShortFrame = errors.New("frame too short")
	// ErrLongFrame indicates a payload larger than FrameCapacity.
	ErrLongFrame = errors.New("frame too long")
)

// CommandFrame is the frame buffer carrying a command.
type CommandFrame [FrameCapacity]byte

// Encode builds a command frame. Values are not validated.
func Encode(cmd Command, fn Function, value byte) CommandFrame {
	var f CommandFrame
	f[FieldCommand] = byte(cmd)
	f[FieldFunction] = byte(fn)
	f[FieldValue] = value
	return f
}

// Decode extracts the command fields. Out of range command or function
// bytes are returned as-is, validation is left to the receiver.
func Decode(f CommandFrame) (Command, Function, byte) {
	return Command(f[FieldCommand]), Function(f[FieldFunction]), f[FieldValue]
}

// FrameFromBytes copies a received payload into a frame buffer.
func FrameFromBytes(b []byte) (CommandFrame, error) {
	var f CommandFrame
	if len(b) < FrameLength {
		return f, ErrShortFrame
	}
	if len(b) > FrameCapacity {
		return f, ErrLongFrame
	}
	copy(f[:], b)
	return f, nil
}

// Len returns the declared length.
func (f CommandFrame) Len() int {
	return FrameLength
}

// Payload returns the meaningful bytes.
func (f CommandFrame) Payload() []byte {
	return f[:FrameLength]
}

func (f CommandFrame) String() string {
	cmd, fn, value := Decode(f)
	return fmt.Sprintf("%s %s %d", cmd, fn, value)
}
