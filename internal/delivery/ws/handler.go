package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/uxmedia/demoportal/internal/models"
)

type Snapshotter interface {
	Snapshot() models.Snapshot
}

// Handler upgrades the connection, sends the current snapshot, then keeps
// the client registered for pushed updates until it disconnects.
func Handler(hub *Hub, state Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "ws upgrade failed", http.StatusBadRequest)
			return
		}

		// Initial write happens before Register so it cannot race a
		// concurrent Broadcast on the same connection.
		if payload, err := json.Marshal(state.Snapshot()); err == nil {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Printf("[ws] initial send failed: %v", err)
				conn.Close()
				return
			}
		}

		hub.Register(conn)
		defer hub.Unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
