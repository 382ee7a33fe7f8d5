package sh

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/link"
)

func newTestShell(t *testing.T, r can914.ModuleRole, failures int) *Shell {
	s := &Shell{linkOpts: []link.Option{link.WithSleeper(link.SleepFunc(func(time.Duration) {}))}}
	require.NoError(t, s.Use(r, failures))
	return s
}

func TestUse(t *testing.T) {
	s := newTestShell(t, can914.RoleTrunk, 2)
	st := s.State()
	require.Equal(t, "trunk", st.Role)
	require.Equal(t, link.StateReady.String(), st.State)
	require.Equal(t, 3, st.Attempts)
	require.False(t, st.Pending)

	require.Error(t, (&Shell{}).Use(can914.RoleMain, -1))
}

func TestResolve(t *testing.T) {
	s := &Shell{}
	cases := []struct {
		args []string
		pin  can914.RelayPin
	}{
		{[]string{"frunk", "fans"}, can914.FrunkPinFans},
		{[]string{"main", "starter"}, can914.MainPinStarter},
		{[]string{"controls", "fans"}, can914.RelayPinNone},
		{[]string{"trunk", "2"}, can914.RelayPinNone},
	}
	for _, c := range cases {
		res, err := s.Resolve(c.args)
		require.NoError(t, err)
		require.Equal(t, c.pin, res.Pin, "%v", c.args)
	}
	_, err := s.Resolve([]string{"hood", "fans"})
	require.Error(t, err)
	_, err = s.Resolve([]string{"frunk"})
	require.Error(t, err)
}

func TestTable(t *testing.T) {
	s := newTestShell(t, can914.RoleMain, 0)
	res, err := s.Table(nil)
	require.NoError(t, err)
	require.Len(t, res, len(can914.Functions()))
	var mapped int
	for _, r := range res {
		require.Equal(t, "main", r.Role)
		if r.Pin != can914.RelayPinNone {
			mapped++
		}
	}
	require.Equal(t, len(can914.NewResolver().Mapped(can914.RoleMain)), mapped)

	_, err = (&Shell{}).Table(nil)
	require.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	s := &Shell{}
	enc, err := s.Encode([]string{"set", "fans", "on"})
	require.NoError(t, err)
	require.Equal(t, "0001020100000000", enc.Hex)
	require.Equal(t, "fans", enc.Function)
	require.Equal(t, byte(1), enc.Value)

	dec, err := s.Decode([]string{"00010201"})
	require.NoError(t, err)
	require.Equal(t, enc, dec)

	_, err = s.Decode([]string{"0001"})
	require.Equal(t, can914.ErrShortFrame, err)
	_, err = s.Decode([]string{"zz"})
	require.Error(t, err)
}

func TestSendAndFrames(t *testing.T) {
	s := newTestShell(t, can914.RoleFrunk, 0)
	res, err := s.Send([]string{"set", "fans", "1"})
	require.NoError(t, err)
	require.Equal(t, SendResult{Frame: "007#00010201", Status: "ok"}, res)
	require.Equal(t, FramesResult{"007#00010201"}, s.Frames())
}

func TestDrive(t *testing.T) {
	s := newTestShell(t, can914.RoleFrunk, 0)
	res, err := s.Drive([]string{"fans", "on"})
	require.NoError(t, err)
	require.True(t, res.Driven)
	require.Equal(t, byte(can914.FrunkPinFans), res.Pin)
	require.Equal(t, "LOW", res.Level)

	res, err = s.Drive([]string{"fans", "off"})
	require.NoError(t, err)
	require.Equal(t, "HIGH", res.Level)

	res, err = s.Drive([]string{"starter", "on"})
	require.NoError(t, err)
	require.False(t, res.Driven)

	_, err = s.Drive([]string{"fans", "maybe"})
	require.Error(t, err)
}

func TestResultJSON(t *testing.T) {
	out, err := json.Marshal(PinResult{Role: "frunk", Function: "fans", Pin: can914.FrunkPinFans})
	require.NoError(t, err)
	require.JSONEq(t, `{"role":"frunk","function":"fans","pin":4}`, string(out))
}
