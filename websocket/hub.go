package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// SettingsEvent tells connected clients that a shared setting changed and
// should be re-fetched.
type SettingsEvent struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Client struct {
	Conn *websocket.Conn
}

var clients = make(map[*websocket.Conn]bool)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan SettingsEvent)

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.Conn] = true
			clientsMu.Unlock()
			log.Printf("Settings client registered (%d connected)", len(clients))
		case client := <-Unregister:
			clientsMu.Lock()
			delete(clients, client.Conn)
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			stale := make([]*websocket.Conn, 0)
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error notifying settings client: %v", err)
					conn.Close()
					stale = append(stale, conn)
				}
			}
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, conn := range stale {
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}
