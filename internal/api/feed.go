package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-attend/internal/attendance"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Feed pushes attendance events to connected dashboard sockets as they
// happen. Broadcast never blocks handlers; a client whose write fails is
// dropped.
type Feed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewFeed() *Feed {
	return &Feed{clients: make(map[*websocket.Conn]struct{})}
}

func (f *Feed) Broadcast(e attendance.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.clients {
		if err := conn.WriteJSON(e); err != nil {
			conn.Close()
			delete(f.clients, conn)
		}
	}
}

// Handler upgrades the connection and keeps it registered until the client
// goes away. Clients only listen; inbound messages are discarded.
func (f *Feed) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		f.mu.Lock()
		f.clients[conn] = struct{}{}
		f.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		f.mu.Lock()
		delete(f.clients, conn)
		f.mu.Unlock()
		conn.Close()
	}
}
