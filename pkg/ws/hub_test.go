package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func serveHub(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if err := h.Add(r.URL.Query().Get("id"), conn, map[string]string{"type": "hello"}); err != nil {
			conn.Close()
		}
	}))
}

func dial(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/?id="+id, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitLen(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Len = %d, want %d", h.Len(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastDelivers(t *testing.T) {
	h := NewHub(time.Minute)
	srv := serveHub(t, h)
	defer srv.Close()

	conn := dial(t, srv, "a")
	defer conn.Close()
	waitLen(t, h, 1)

	if err := h.Broadcast(map[string]string{"type": "audio.created"}); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for _, want := range []string{"hello", "audio.created"} {
		var msg map[string]string
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg["type"] != want {
			t.Errorf("type = %q, want %q", msg["type"], want)
		}
	}

	h.Remove("a")
	if h.Len() != 0 {
		t.Errorf("Len after Remove = %d", h.Len())
	}
	h.Remove("a")
}

func TestHub_StalledSubscriberDoesNotBlockBroadcast(t *testing.T) {
	h := NewHub(time.Minute)
	srv := serveHub(t, h)
	defer srv.Close()

	stalled := dial(t, srv, "stalled")
	defer stalled.Close()
	waitLen(t, h, 1)

	// Far more than socket buffers hold; the client never reads.
	payload := map[string]string{"type": "audio.created", "pad": strings.Repeat("x", 256<<10)}
	start := time.Now()
	for i := 0; i < 200; i++ {
		if err := h.Broadcast(payload); err != nil {
			t.Fatalf("Broadcast: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("broadcasts took %v behind a stalled subscriber", elapsed)
	}
	if h.Len() != 0 {
		t.Errorf("stalled subscriber still registered")
	}
}
