package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/streampair/bracket-system/brackets"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the app's origins before exposing this publicly.
		return true
	},
}

type WebSocketHandler struct {
	hub *brackets.Hub
}

func NewWebSocketHandler(hub *brackets.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeFillInBracket upgrades the connection and attaches the client to the
// room for one fill-in bracket; every save to that bracket pushes a full
// snapshot down this socket.
func (h *WebSocketHandler) ServeFillInBracket(w http.ResponseWriter, r *http.Request) {
	bracketID, err := getIDFromURL(r, "bracketID")
	if err != nil {
		http.Error(w, "invalid bracketID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: brackets.FillInRoom(bracketID),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
