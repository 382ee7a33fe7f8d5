package gpio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()
	require.Error(t, m.Write(3, High))
	require.NoError(t, m.ConfigureOutput(3))
	require.Equal(t, Output, m.Direction(3))
	require.NoError(t, m.Write(3, High))
	require.Equal(t, High, m.Read(3))
	require.NoError(t, m.Write(3, Low))
	require.Equal(t, []PinWrite{{3, High}, {3, Low}}, m.Writes())

	require.NoError(t, m.ConfigureInput(14))
	require.Equal(t, High, m.Read(14))
	m.Set(14, Low)
	require.Equal(t, Low, m.Read(14))
}

func TestMemoryNoSuchPin(t *testing.T) {
	m := NewMemory()
	err := m.ConfigureOutput(99)
	require.Error(t, err)
	pinErr, ok := err.(*PinError)
	require.True(t, ok)
	require.Equal(t, Pin(99), pinErr.Pin)
	require.Error(t, m.Write(99, Low))
	require.Equal(t, High, m.Read(99))
	require.Empty(t, m.Writes())
}
