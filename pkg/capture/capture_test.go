package capture

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/can914/pkg/bus"
	"github.com/robotalks/can914/pkg/bus/sim"
	"github.com/robotalks/can914/pkg/can914"
	"github.com/robotalks/can914/pkg/link"
)

func fixedNow() time.Time {
	return time.Unix(1700000000, 123456000)
}

func TestRecorder(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	rec.Now = fixedNow

	ctl := sim.New(1)
	m := link.New(ctl,
		link.WithSleeper(link.SleepFunc(func(time.Duration) {})),
		link.WithObserver(rec))
	m.Begin(bus.Bitrate500K, bus.Clock8MHz)
	m.Send(can914.CommandSet, can914.FunctionFans, 1)
	ctl.InjectError(0x1f, 8, 0)
	m.Send(can914.CommandSet, can914.FunctionFans, 0)
	require.NoError(t, rec.Err())

	r := NewReader(&buf)
	var records []*Record
	for {
		record, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		records = append(records, record)
	}
	require.Len(t, records, 5)
	for n, record := range records {
		require.Equal(t, uint64(n+1), record.Seq)
		require.Equal(t, fixedNow().UnixNano(), record.Time)
	}
	require.Equal(t, KindState, records[0].Kind)
	require.Equal(t, "initializing", records[0].State)
	require.Equal(t, "ready", records[1].State)
	require.Equal(t, KindFrame, records[2].Kind)
	require.Equal(t, "007#00010201", records[2].Frame().String())
	require.Equal(t, "007#00010200", records[3].Frame().String())
	require.Equal(t, KindError, records[4].Kind)
	require.Equal(t, byte(0x18), records[4].Flags)
	require.Equal(t, byte(8), records[4].TEC)
}

func TestRecorderExtendedFrame(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	ext := bus.NewFrame(0x18DAF110, true, 2, []byte{0xab, 0xcd})
	std := bus.NewFrame(0x259, false, 1, []byte{0x01})
	rec.FrameSent(ext, bus.StatusOK)
	rec.FrameSent(std, bus.StatusOK)
	require.NoError(t, rec.Err())

	r := NewReader(&buf)
	record, err := r.Next()
	require.NoError(t, err)
	require.True(t, record.Ext)
	require.Equal(t, ext, record.Frame())
	record, err = r.Next()
	require.NoError(t, err)
	require.False(t, record.Ext)
	require.Equal(t, std, record.Frame())
	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestCandump(t *testing.T) {
	var buf bytes.Buffer
	c := NewCandump(&buf, "")
	c.Now = fixedNow
	c.FrameSent(bus.NewFrame(7, false, 4, []byte{0, 1, 2, 1}), bus.StatusOK)
	c.FrameSent(bus.NewFrame(7, false, 4, []byte{0, 1, 2, 0}), bus.StatusFailTX)
	c.StateChanged(link.StateReady)
	require.Equal(t, "(1700000000.123456) can0 007#00010201\n", buf.String())
}
