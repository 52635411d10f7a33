package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readEvent reads one event with a timeout so a missing message fails the test instead of hanging it.
func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	var ev Event
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err, "Failed to read message from WebSocket")
	require.NoError(t, json.Unmarshal(p, &ev), "Failed to unmarshal Event JSON")
	return ev
}

func expectNoEvent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	require.Error(t, err, "no event expected")
}

func dial(t *testing.T, hub *Hub, wsURL, serviceID string) *websocket.Conn {
	t.Helper()
	before := hub.ClientCount(serviceID)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws?serviceId="+serviceID, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount(serviceID) == before+1 },
		time.Second, 10*time.Millisecond, "client never registered")
	return conn
}

func TestHubDeliversByService(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	s1 := dial(t, hub, wsURL, "s1")
	defer s1.Close()
	s2 := dial(t, hub, wsURL, "s2")
	defer s2.Close()
	all := dial(t, hub, wsURL, AllServices)
	defer all.Close()

	hub.Publish(Event{
		Type:      ReviewCreatedType,
		ServiceID: "s1",
		ReviewID:  "507f1f77bcf86cd799439011",
		Payload:   json.RawMessage(`{"rating":5}`),
	})

	ev := readEvent(t, s1)
	assert.Equal(t, ReviewCreatedType, ev.Type)
	assert.Equal(t, "s1", ev.ServiceID)
	assert.JSONEq(t, `{"rating":5}`, string(ev.Payload))

	ev = readEvent(t, all)
	assert.Equal(t, "507f1f77bcf86cd799439011", ev.ReviewID)

	expectNoEvent(t, s2)

	// Reviews stored without a serviceId only reach the firehose.
	hub.Publish(Event{Type: ReviewDeletedType, ReviewID: "507f1f77bcf86cd799439011"})
	ev = readEvent(t, all)
	assert.Equal(t, ReviewDeletedType, ev.Type)
	expectNoEvent(t, s1)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn := dial(t, hub, wsURL, "s1")
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return hub.ClientCount("s1") == 0 },
		2*time.Second, 10*time.Millisecond, "client never unregistered")
}

func TestPublishDoesNotBlockWithoutRun(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < eventQueueSize*2; i++ {
			hub.Publish(Event{Type: ReviewUpdatedType, ReviewID: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
}
