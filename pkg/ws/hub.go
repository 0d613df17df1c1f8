package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to every connected subscriber. Each subscriber
// has its own writer goroutine; only that goroutine writes to the
// connection, including pings.
type Hub struct {
	mu         sync.Mutex
	subs       map[string]*subscriber
	pingPeriod time.Duration
}

func NewHub(pingPeriod time.Duration) *Hub {
	return &Hub{subs: map[string]*subscriber{}, pingPeriod: pingPeriod}
}

// Add queues hello for c, registers it and starts its writer. hello is
// always the first message c receives.
func (h *Hub) Add(id string, c *websocket.Conn, hello any) error {
	msg, err := json.Marshal(hello)
	if err != nil {
		return err
	}
	s := &subscriber{conn: c, send: make(chan []byte, sendBuffer)}
	s.send <- msg

	h.mu.Lock()
	h.subs[id] = s
	h.mu.Unlock()

	go h.writePump(s)
	return nil
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(id)
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast queues v for every subscriber without blocking. A subscriber
// whose buffer is full is disconnected.
func (h *Hub) Broadcast(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.subs {
		select {
		case s.send <- msg:
		default:
			h.drop(id)
		}
	}
	return nil
}

// drop must be called with h.mu held.
func (h *Hub) drop(id string) {
	s, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(s.send)
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(h.pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
