package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bodgit/monosprite/display"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	s := New(16, 16, nil)

	buf := make([]byte, 32)
	buf[0] = 0xaa
	require.NoError(t, s.Render(buf, 0, 0, 0, 0))

	srv := httptest.NewServer(s)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// Whole panel first
	mt, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, mt)
	assert.Equal(t, []byte{0, 0, 15, 0, 0, 0, 1, 0}, msg[:headerSize])
	assert.Len(t, msg, headerSize+32)
	assert.Equal(t, byte(0xaa), msg[headerSize])

	assert.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 10*time.Millisecond)

	buf[16+3], buf[16+4] = 0x01, 0x02
	require.NoError(t, s.Render(buf, 3, 4, 1, 1))

	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 0, 4, 0, 1, 0, 1, 0, 0x01, 0x02}, msg)

	assert.Equal(t, display.ErrRegion, s.Render(buf, 0, 0, 0, 2))

	conn.Close()
	assert.Eventually(t, func() bool { return s.Clients() == 0 }, 5*time.Second, 10*time.Millisecond)
}
