package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"safety-worker-go/internal/models"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

// Message is the envelope pushed to every subscriber
type Message struct {
	Type    string          `json:"type"`
	Subject string          `json:"subject"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	conn     *websocket.Conn
	cameraID string // empty subscribes to every camera

	// send is closed by the hub when the client is removed
	send chan []byte
}

func newClient(conn *websocket.Conn, cameraID string) *client {
	return &client{conn: conn, cameraID: cameraID, send: make(chan []byte, sendBuffer)}
}

// writePump is the connection's only writer. It drains send, keeps the peer
// alive with pings and closes the connection once send is closed.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "subscription closed"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Warn().Err(err).Str("camera_filter", c.cameraID).Msg("Failed to send alert to subscriber")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// AlertHub fans triggered alerts out to websocket subscribers
type AlertHub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewAlertHub() *AlertHub {
	return &AlertHub{clients: make(map[*client]struct{})}
}

func (h *AlertHub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	log.Info().Str("camera_filter", c.cameraID).Int("total", total).Msg("Alert subscriber connected")
}

func (h *AlertHub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	if ok {
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		log.Info().Str("camera_filter", c.cameraID).Msg("Alert subscriber disconnected")
	}
}

// ClientCount returns the number of connected subscribers
func (h *AlertHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements models.MessagePublisher. Subscribers with a camera
// filter only receive alert events of that camera.
func (h *AlertHub) Publish(subject string, data interface{}) error {
	if h.ClientCount() == 0 {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode websocket message for %s: %w", subject, err)
	}
	msg, err := json.Marshal(Message{Type: "alert", Subject: subject, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to encode websocket envelope: %w", err)
	}

	h.broadcast(cameraOf(data), msg)
	return nil
}

// broadcast queues msg for every matching subscriber without blocking.
// Subscribers whose queue is full are dropped.
func (h *AlertHub) broadcast(cameraID string, msg []byte) {
	var slow []*client

	h.mu.RLock()
	for c := range h.clients {
		if c.cameraID != "" && c.cameraID != cameraID {
			continue
		}
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Str("camera_filter", c.cameraID).Int("queued", sendBuffer).Msg("Alert subscriber too slow, disconnecting")
		h.unregister(c)
	}
}

// Close disconnects every subscriber
func (h *AlertHub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		close(c.send)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()
}

func cameraOf(data interface{}) string {
	switch v := data.(type) {
	case models.AlertEvent:
		return v.Record.CameraID
	case *models.AlertEvent:
		if v != nil {
			return v.Record.CameraID
		}
	}
	return ""
}
