package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Berikbol/ring-system/rings"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Операторский UI ходит с того же хоста; в продакшене сюда
		// добавляется проверка Origin по списку доверенных доменов.
		return true
	},
}

type WebSocketHandler struct {
	hub *rings.Hub
}

func NewWebSocketHandler(hub *rings.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs подключает клиента к комнате обновлений. Комната задаётся
// query-параметром division; без него клиент слушает весь турнир.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("division")
	if room == "" {
		room = rings.RoomAll
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP-ошибку клиенту, здесь только лог.
		slog.Error("websocket upgrade failed", slog.String("room", room), slog.Any("error", err))
		return
	}

	client := &rings.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: room,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	slog.Info("websocket client connected", slog.String("room", room))
}
