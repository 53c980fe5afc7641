// Package ticks streams clock ticks to websocket clients.
//
// The hub listens on the tickbus event bus and fans every tick and
// day-started event out to connected clients as JSON. It never blocks the
// publisher: a client whose buffer is full is dropped.
package ticks

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/services/tickbus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// DefaultSendBuffer is the number of messages queued per client
	DefaultSendBuffer = 256
)

// SendBufferFor sizes a client buffer to hold every message one jump of
// maxSkip can publish: a tick per phase plus a day-started per day crossed.
// Delivery of a jump runs to completion before the write pumps catch up, so
// a smaller buffer drops healthy clients on long skips.
func SendBufferFor(maxSkip time.Duration, phaseLengthSeconds float64) int {
	if maxSkip <= 0 || phaseLengthSeconds <= 0 {
		return DefaultSendBuffer
	}
	phases := math.Ceil(maxSkip.Seconds() / phaseLengthSeconds)
	days := math.Ceil(maxSkip.Hours()/24) + 1
	return max(int(phases+days), DefaultSendBuffer)
}

// Message is one frame sent to clients
type Message struct {
	Type      string  `json:"type"`
	WorldID   string  `json:"world_id"`
	Phase     int64   `json:"phase"`
	DayIndex  int64   `json:"day_index"`
	DayOfWeek string  `json:"day_of_week"`
	Hour      float64 `json:"hour"`
	Time      string  `json:"time"`
}

// Config holds the hub dependencies
type Config struct {
	EventBus   events.EventBus
	SendBuffer int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.SendBuffer < 0 {
		vb.Fieldf("SendBuffer", "must not be negative, got %d", c.SendBuffer)
	}
	return vb.Build()
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans tick events out to websocket clients. It is an http.Handler.
type Hub struct {
	upgrader   websocket.Upgrader
	sendBuffer int

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

var _ http.Handler = (*Hub)(nil)

// NewHub creates a hub subscribed to the tick events on cfg.EventBus
func NewHub(cfg *Config) (*Hub, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tick hub config")
	}

	sendBuffer := cfg.SendBuffer
	if sendBuffer == 0 {
		sendBuffer = DefaultSendBuffer
	}

	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sendBuffer: sendBuffer,
		clients:    make(map[*client]struct{}),
	}

	cfg.EventBus.SubscribeFunc(tickbus.EventTick, 0, h.onEvent)
	cfg.EventBus.SubscribeFunc(tickbus.EventDayStarted, 0, h.onEvent)
	return h, nil
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams ticks until the client goes away
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		slog.Debug("tick stream upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.sendBuffer)}
	if !h.add(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	slog.Debug("tick stream client connected", "remote", r.RemoteAddr)

	go c.writePump()
	c.readPump()
	h.remove(c)
	slog.Debug("tick stream client disconnected", "remote", r.RemoteAddr)
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) onEvent(_ context.Context, e events.Event) error {
	payload, err := json.Marshal(messageFromEvent(e))
	if err != nil {
		return errors.Wrap(err, "failed to encode tick message")
	}
	h.broadcast(payload)
	return nil
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slog.Warn("dropping slow tick stream client", "remote", c.conn.RemoteAddr().String())
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

// remove is safe to call after broadcast or Close already dropped c
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards client frames; it exists to process pongs and notice
// the peer going away
func (c *client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("tick stream read failed", "error", err)
			}
			return
		}
	}
}

// writePump is the only writer on the connection. It exits when send is
// closed or a write fails, closing the connection either way.
func (c *client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func messageFromEvent(e events.Event) Message {
	msg := Message{Type: e.Type()}
	if e.Source() != nil {
		msg.WorldID = e.Source().GetID()
	}

	ec := e.Context()
	if v, ok := ec.Get(tickbus.KeyPhase); ok {
		msg.Phase, _ = v.(int64)
	}
	if v, ok := ec.Get(tickbus.KeyDayIndex); ok {
		msg.DayIndex, _ = v.(int64)
	}
	if v, ok := ec.Get(tickbus.KeyDayOfWeek); ok {
		msg.DayOfWeek, _ = v.(string)
	}
	if v, ok := ec.Get(tickbus.KeyHour); ok {
		msg.Hour, _ = v.(float64)
	}
	if v, ok := ec.Get(tickbus.KeyTime); ok {
		msg.Time, _ = v.(string)
	}
	return msg
}
