package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pv_normalizer/internal/replay"
	"pv_normalizer/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades WebSocket connections and routes client commands to the
// replayer.
type Handler struct {
	hub      *Hub
	replayer *replay.Replayer
	store    *store.Store
}

func NewHandler(hub *Hub, replayer *replay.Replayer, st *store.Store) *Handler {
	return &Handler{hub: hub, replayer: replayer, store: st}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := newClient(conn)
	h.hub.Register(client)
	go client.writePump()

	h.sendDataLoaded(client)
	h.sendReplayState(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(msg)
	}
}

func (h *Handler) handleMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeReplayStart:
		h.replayer.Start()

	case TypeReplayPause:
		h.replayer.Pause()

	case TypeReplaySetSpeed:
		var p SetSpeedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid set_speed payload: %v", err)
			return
		}
		h.replayer.SetSpeed(p.Speed)

	case TypeReplaySeek:
		var p SeekPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid seek payload: %v", err)
			return
		}
		t, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			log.Printf("Invalid seek timestamp: %v", err)
			return
		}
		h.replayer.Seek(t)

	default:
		log.Printf("Unknown message type: %s", env.Type)
	}
}

func (h *Handler) dataLoadedMessage() ([]byte, error) {
	tr := h.replayer.TimeRange()
	storeChannels := h.store.Channels()
	channels := make([]ChannelInfo, 0, len(storeChannels))
	for _, ch := range storeChannels {
		channels = append(channels, ChannelInfo{Name: ch.Name, Unit: ch.Unit})
	}

	payload := DataLoadedPayload{
		Channels: channels,
		TimeRange: TimeRangeInfo{
			Start: tr.Start.Format(time.RFC3339),
			End:   tr.End.Format(time.RFC3339),
		},
	}
	return NewEnvelope(TypeDataLoaded, payload)
}

func (h *Handler) sendDataLoaded(c *Client) {
	msg, err := h.dataLoadedMessage()
	if err != nil {
		log.Printf("Error creating data:loaded message: %v", err)
		return
	}
	c.enqueue(msg)
}

func (h *Handler) sendReplayState(c *Client) {
	s := h.replayer.State()
	msg, err := NewEnvelope(TypeReplayState, ReplayStatePayload{
		Time:    s.Time.Format(time.RFC3339),
		Speed:   s.Speed,
		Running: s.Running,
	})
	if err != nil {
		return
	}
	c.enqueue(msg)
}
