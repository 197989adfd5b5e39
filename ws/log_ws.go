package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LogEvent tells listeners which entry changed so they can refresh the table.
type LogEvent struct {
	Type string    `json:"type"`
	ID   int64     `json:"id,omitempty"`
	At   time.Time `json:"at"`
}

// LogHub fans log change events out to every connected browser.
type LogHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan LogEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	mu         sync.Mutex
}

func NewLogHub() *LogHub {
	return &LogHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan LogEvent, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
	}
}

// Run serves register/unregister/broadcast until Stop is called.
func (h *LogHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *LogHub) Stop() {
	close(h.done)
}

// Clients reports how many listeners are connected.
func (h *LogHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// NotifyChange queues an event without blocking the request that caused it.
// Events are dropped when the queue is full.
func (h *LogHub) NotifyChange(kind string, id int64) {
	ev := LogEvent{Type: kind, ID: id, At: time.Now()}
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("⚠️ ws broadcast queue full, dropping %s event for %d", kind, id)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/logs
func (h *LogHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	select {
	case h.register <- conn:
		go h.listen(conn)
	case <-h.done:
		conn.Close()
	}
}

// listen only drains the connection; clients never send anything useful.
func (h *LogHub) listen(conn *websocket.Conn) {
	defer func() {
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
