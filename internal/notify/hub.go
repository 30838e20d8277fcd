package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// connection is one live-board client. An empty rooms set means "all rooms".
type connection struct {
	id    string
	conn  *websocket.Conn
	send  chan []byte
	rooms map[int64]bool
}

// Hub pushes booking events to connected WebSocket clients.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
	log         *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*connection),
		log:         log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.id] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.id]; ok && existing == c {
		delete(h.connections, c.id)
		close(c.send)
	}
}

// Send implements Sink. Slow clients whose buffer is full miss the event.
func (h *Hub) Send(_ context.Context, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if len(c.rooms) > 0 && !c.rooms[event.RoomID] {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
	return nil
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// HandleWebSocket handles GET /ws/bookings[?room_id=N].
// Clients may send {"type":"subscribe","room_id":N} or "unsubscribe" later.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	var initial []int64
	if raw := c.Query("room_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "VALIDATION_ERROR", "message": "room_id must be an integer"},
			})
			return
		}
		initial = append(initial, id)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.serve(conn, initial)
}

func (h *Hub) serve(conn *websocket.Conn, rooms []int64) {
	c := &connection{
		id:    uuid.NewString(),
		conn:  conn,
		send:  make(chan []byte, 64),
		rooms: make(map[int64]bool),
	}
	for _, id := range rooms {
		c.rooms[id] = true
	}

	h.register(c)
	h.log.Debug("live feed client connected", "client_id", c.id)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		h.log.Debug("live feed client disconnected", "client_id", c.id)
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd struct {
			Type   string `json:"type"`
			RoomID int64  `json:"room_id"`
		}
		if err := json.Unmarshal(msg, &cmd); err != nil {
			continue
		}

		switch cmd.Type {
		case "subscribe":
			h.mu.Lock()
			c.rooms[cmd.RoomID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.rooms, cmd.RoomID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
