package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/services"
	"github.com/yeremiapane/rental-backoffice/utils"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans messages out to every connected back-office client.
type Hub struct {
	clients  map[*websocket.Conn]string // conn -> role
	mutex    sync.Mutex
	presence func(count int)

	// presenceMu serialises joins and leaves with their callbacks.
	presenceMu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

// OnPresence is called with the new client count whenever a client joins or
// leaves. Calls are delivered one at a time in join/leave order, outside the
// hub lock.
func (h *Hub) OnPresence(fn func(count int)) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.presence = fn
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.presenceMu.Lock()
	defer h.presenceMu.Unlock()

	h.mutex.Lock()
	h.clients[conn] = role
	count, presence := len(h.clients), h.presence
	h.mutex.Unlock()

	utils.InfoLogger.Printf("Websocket client joined (role %s, %d connected)", role, count)
	if presence != nil {
		presence(count)
	}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.presenceMu.Lock()
	defer h.presenceMu.Unlock()

	h.mutex.Lock()
	_, known := h.clients[conn]
	delete(h.clients, conn)
	count, presence := len(h.clients), h.presence
	h.mutex.Unlock()

	conn.Close()
	if !known {
		return
	}
	utils.InfoLogger.Printf("Websocket client left (%d connected)", count)
	if presence != nil {
		presence(count)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish sends one event to every client. Clients that fail a write are dropped.
func (h *Hub) Publish(_ context.Context, event string, payload interface{}) error {
	data, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		return err
	}

	h.mutex.Lock()
	var dead []*websocket.Conn
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithError(err).Error("Error sending message to client")
			dead = append(dead, conn)
		}
	}
	h.mutex.Unlock()

	for _, conn := range dead {
		h.Unregister(conn)
	}
	return nil
}

// BroadcastBoard is registered as a poller listener.
func (h *Hub) BroadcastBoard(board cleaning.Board) {
	if h.ClientCount() == 0 {
		return
	}
	h.Publish(context.Background(), services.EventBoardUpdate, board)
}

