package bus

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDataLen is the maximum data length of a classic frame.
const MaxDataLen = 8

// ErrBadFrame indicates a malformed frame notation.
var ErrBadFrame = errors.New("bad frame")

// Frame is a frame on the wire.
type Frame struct {
	ID       uint32
	Extended bool
	DLC      byte
	Data     [MaxDataLen]byte
}

// NewFrame creates a frame copying up to dlc bytes of data.
func NewFrame(id uint32, ext bool, dlc byte, data []byte) Frame {
	f := Frame{ID: id, Extended: ext, DLC: dlc}
	if f.DLC > MaxDataLen {
		f.DLC = MaxDataLen
	}
	copy(f.Data[:f.DLC], data)
	return f
}

// Payload returns the first DLC bytes.
func (f Frame) Payload() []byte {
	return f.Data[:f.DLC]
}

// String formats the frame in candump notation, e.g. 007#00010201.
func (f Frame) String() string {
	var id string
	if f.Extended {
		id = fmt.Sprintf("%08X", f.ID)
	} else {
		id = fmt.Sprintf("%03X", f.ID)
	}
	return id + "#" + strings.ToUpper(hex.EncodeToString(f.Payload()))
}

// ParseFrame parses candump notation.
func ParseFrame(s string) (Frame, error) {
	s = strings.TrimSpace(s)
	idx := strings.Index(s, "#")
	if idx <= 0 {
		return Frame{}, ErrBadFrame
	}
	idPart := s[:idx]
	id, err := strconv.ParseUint(idPart, 16, 32)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: id %q", ErrBadFrame, idPart)
	}
	data, err := hex.DecodeString(strings.ReplaceAll(s[idx+1:], " ", ""))
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	if len(data) > MaxDataLen {
		return Frame{}, fmt.Errorf("%w: %d data bytes", ErrBadFrame, len(data))
	}
	return NewFrame(uint32(id), len(idPart) > 3, byte(len(data)), data), nil
}
