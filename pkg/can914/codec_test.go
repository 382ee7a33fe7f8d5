package can914

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	testCases := []struct {
		name   string
		cmd    Command
		fn     Function
		value  byte
		expect CommandFrame
	}{
		{"set fans", CommandSet, FunctionFans, 1, CommandFrame{0, 1, 2, 1, 0, 0, 0, 0}},
		{"get starter", CommandGet, FunctionStarter, 0, CommandFrame{0, 2, 1, 0, 0, 0, 0, 0}},
		{"response turn right", CommandResponse, FunctionTurnSignalRight, 0xff, CommandFrame{0, 3, 10, 0xff, 0, 0, 0, 0}},
		{"raw passthrough", Command(0x42), Function(0x99), 0x80, CommandFrame{0, 0x42, 0x99, 0x80, 0, 0, 0, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := Encode(tc.cmd, tc.fn, tc.value)
			require.Equal(t, tc.expect, f)
			require.Equal(t, f, Encode(tc.cmd, tc.fn, tc.value))
			require.Equal(t, FrameLength, f.Len())
			require.Equal(t, tc.expect[:FrameLength], f.Payload())
		})
	}
}

func TestEncodeDecodeAll(t *testing.T) {
	for cmd := CommandSet; cmd <= CommandResponse; cmd++ {
		for _, fn := range Functions() {
			for v := 0; v < 256; v++ {
				f := Encode(cmd, fn, byte(v))
				require.Zero(t, f[0])
				require.Equal(t, []byte{0, 0, 0, 0}, f[FrameLength:])
				c, fn1, v1 := Decode(f)
				require.Equal(t, cmd, c)
				require.Equal(t, fn, fn1)
				require.Equal(t, byte(v), v1)
			}
		}
	}
}

func TestDecodeOpaque(t *testing.T) {
	cmd, fn, v := Decode(CommandFrame{0, 9, 0, 7})
	require.False(t, cmd.Valid())
	require.False(t, fn.Valid())
	require.Equal(t, Command(9), cmd)
	require.Equal(t, Function(0), fn)
	require.Equal(t, byte(7), v)
}

func TestFrameFromBytes(t *testing.T) {
	f, err := FrameFromBytes([]byte{0, 1, 2, 1})
	require.NoError(t, err)
	require.Equal(t, Encode(CommandSet, FunctionFans, 1), f)

	f, err = FrameFromBytes([]byte{0, 1, 2, 1, 0, 0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, Encode(CommandSet, FunctionFans, 1), f)

	_, err = FrameFromBytes([]byte{0, 1, 2})
	require.Equal(t, ErrShortFrame, err)
	_, err = FrameFromBytes(make([]byte, 9))
	require.Equal(t, ErrLongFrame, err)
}
