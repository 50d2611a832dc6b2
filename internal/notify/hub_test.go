package notify

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounters/internal/testutil"
)

func TestHub_StreamsNotices(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx := testutil.ContextWithTimeout(t, 5*time.Second)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	want := Notice{Channel: ChannelChat, Key: "EventEnded", Text: "done", At: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	hub.Send(want)

	var got Notice
	require.NoError(t, wsjson.Read(ctx, conn, &got))
	assert.Equal(t, want, got)

	hub.Close()
	_, _, err = conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))

	require.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RunStopsOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := testutil.ContextWithCancel(t)

	errCh := make(chan error, 1)
	go func() { errCh <- hub.Run(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("hub did not stop")
	}
}
