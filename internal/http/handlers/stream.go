package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/steveyiyo/tts-clone-backend/pkg/types"
	"github.com/steveyiyo/tts-clone-backend/pkg/ws"
)

const (
	PongWait   = 60 * time.Second
	PingPeriod = PongWait * 9 / 10
)

// StreamHandler pushes every newly created audio record to WebSocket
// subscribers. It implements audio.Publisher.
type StreamHandler struct {
	Hub      *ws.Hub
	Log      zerolog.Logger
	Upgrader websocket.Upgrader
	// PongWait must exceed the hub's ping period.
	PongWait time.Duration
}

func NewStreamHandler(h *ws.Hub, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		Hub:      h,
		Log:      log,
		PongWait: PongWait,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) Publish(rec types.SynthesisRecord) {
	if err := h.Hub.Broadcast(types.AudioEvent{Type: "audio.created", Audio: types.NewAudioResp(rec)}); err != nil {
		h.Log.Error().Err(err).Str("id", rec.ID).Msg("publish audio event")
	}
}

func (h *StreamHandler) WS(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	if err := h.Hub.Add(id, conn, gin.H{
		"type": "hello",
		"ts":   time.Now().UnixMilli(),
	}); err != nil {
		return
	}
	defer h.Hub.Remove(id)
	h.Log.Debug().Str("subscriber", id).Msg("feed subscriber connected")

	conn.SetReadLimit(4 << 10)
	conn.SetReadDeadline(time.Now().Add(h.PongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(h.PongWait))
		return nil
	})

	// Client messages are ignored; reading only detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.Log.Debug().Str("subscriber", id).Msg("feed subscriber gone")
			return
		}
		conn.SetReadDeadline(time.Now().Add(h.PongWait))
	}
}
