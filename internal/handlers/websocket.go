package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"towers-verifier-backend/internal/models"
	"towers-verifier-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams verification events to anyone watching the feed.
// Viewers are anonymous; there is nothing to authenticate on a public
// verifier.
type WebSocketHandler struct {
	redisService *services.RedisService
	hub          *WebSocketHub
}

type WebSocketHub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan *Message
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewWebSocketHandler(redisService *services.RedisService) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		redisService: redisService,
		hub:          hub,
	}
}

// BroadcastVerification implements services.Broadcaster.
func (h *WebSocketHandler) BroadcastVerification(event *models.VerificationEvent) {
	h.hub.broadcast <- &Message{
		Type: "VERIFICATION",
		Data: event,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "err", err)
		return
	}

	h.hub.register <- conn

	defer func() {
		h.hub.unregister <- conn
		conn.Close()
	}()

	h.sendBacklog(conn)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket error", "err", err)
			}
			break
		}

		if msg.Type == "PING" {
			conn.WriteJSON(Message{Type: "PONG"})
		}
	}
}

// sendBacklog replays recent verification events so a fresh viewer does not
// start from a blank feed.
func (h *WebSocketHandler) sendBacklog(conn *websocket.Conn) {
	if h.redisService == nil {
		return
	}

	events, err := h.redisService.RecentVerifications(20)
	if err != nil {
		slog.Warn("failed to load verification backlog", "err", err)
		return
	}

	for i := len(events) - 1; i >= 0; i-- {
		conn.WriteJSON(Message{Type: "VERIFICATION", Data: events[i]})
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case conn := <-hub.register:
			hub.clients[conn] = true

		case conn := <-hub.unregister:
			delete(hub.clients, conn)

		case msg := <-hub.broadcast:
			for conn := range hub.clients {
				if err := conn.WriteJSON(msg); err != nil {
					conn.Close()
					delete(hub.clients, conn)
				}
			}
		}
	}
}
