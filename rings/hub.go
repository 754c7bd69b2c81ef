package rings

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Типы событий, рассылаемых операторским UI после мутаций.
const (
	EventRingsUpdated    = "RINGS_UPDATED"
	EventDatasetReplaced = "DATASET_REPLACED"
	EventHistoryApplied  = "HISTORY_APPLIED"
)

// RoomAll receives every event regardless of division.
const RoomAll = "all"

type UpdateMessage struct {
	Type     string `json:"type"`
	Division string `json:"division,omitempty"`
	Payload  any    `json:"payload,omitempty"`
}

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Room     string
	IsClosed bool
	Mu       sync.Mutex
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub разводит события обновления по комнатам. Комната — имя дивизиона,
// плюс общая комната RoomAll для клиентов, следящих за всем турниром.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if roomClients, ok := h.rooms[client.Room]; ok {
				if _, okClient := roomClients[client]; okClient {
					client.Mu.Lock()
					if !client.IsClosed {
						close(client.Send)
						client.IsClosed = true
					}
					client.Mu.Unlock()
					delete(roomClients, client)
					if len(roomClients) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastUpdate отправляет событие в комнату дивизиона и в общую комнату.
func (h *Hub) BroadcastUpdate(msg UpdateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("hub: failed to marshal %s message: %v", msg.Type, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	deliver := func(room string) {
		for client := range h.rooms[room] {
			client.Mu.Lock()
			if client.IsClosed {
				client.Mu.Unlock()
				continue
			}
			select {
			case client.Send <- data:
			default:
				// Slow consumer; drop rather than block the mutation path.
			}
			client.Mu.Unlock()
		}
	}
	deliver(RoomAll)
	if msg.Division != "" && msg.Division != RoomAll {
		deliver(msg.Division)
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		// Clients never send anything meaningful; the read loop only
		// detects disconnects.
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("hub: unexpected close in room %s: %v", c.Room, err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
