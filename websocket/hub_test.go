package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnPair(t *testing.T) (serverConn, clientConn *websocket.Conn) {
	t.Helper()

	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientConn.Close() })

	serverConn = <-conns
	t.Cleanup(func() { serverConn.Close() })
	return serverConn, clientConn
}

// The read loop and hub broadcasts write to the same connection from
// different goroutines; Client.WriteJSON holds the write lock so those
// writes never interleave.
func TestClientWriteJSONSerializesConcurrentWriters(t *testing.T) {
	serverConn, clientConn := newConnPair(t)
	client := &Client{Conn: serverConn}

	const writers, perWriter = 10, 5

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < writers*perWriter; i++ {
			var msg Notification
			if err := clientConn.ReadJSON(&msg); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				assert.NoError(t, client.WriteJSON(Notification{
					Type:    EventBookingUpdate,
					Message: "Booking status updated",
				}))
			}
		}()
	}
	wg.Wait()
	<-done
}
