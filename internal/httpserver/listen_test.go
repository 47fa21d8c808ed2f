package httpserver

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenFirst_FallsBackToNextPort(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })
	busyPort := strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)

	ln, idx, err := ListenFirst("127.0.0.1", []string{busyPort, "0"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	assert.Equal(t, 1, idx)
	assert.NotEqual(t, busyPort, strconv.Itoa(ln.Addr().(*net.TCPAddr).Port))
}

func TestListenFirst_AllBusy(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })
	busyPort := strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)

	ln, idx, err := ListenFirst("127.0.0.1", []string{busyPort, busyPort})
	require.Error(t, err)
	assert.Nil(t, ln)
	assert.Equal(t, -1, idx)
	assert.Contains(t, err.Error(), "all ports busy")

	_, _, err = ListenFirst("127.0.0.1", nil)
	require.Error(t, err)
}
