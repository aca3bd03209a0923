package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"swiftcater/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// StatusHub streams order-status changes to tracking views. Subscriptions are
// keyed by the order's public token, so no login is required.
type StatusHub struct {
	clients    map[string]map[*websocket.Conn]bool // token -> set of clients
	broadcast  chan StatusUpdate
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
	orders     *services.OrderService
}

type Subscription struct {
	Conn  *websocket.Conn
	Token string
}

type StatusUpdate struct {
	Token  string    `json:"token"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

func NewStatusHub(orders *services.OrderService) *StatusHub {
	return &StatusHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan StatusUpdate),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		orders:     orders,
	}
}

// NotifyStatus implements services.StatusNotifier.
func (h *StatusHub) NotifyStatus(token, status string) {
	h.broadcast <- StatusUpdate{Token: token, Status: status, At: time.Now()}
}

func (h *StatusHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.Token] == nil {
				h.clients[sub.Token] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.Token][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.Token][sub.Conn]; ok {
				delete(h.clients[sub.Token], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case upd := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[upd.Token] {
				if err := conn.WriteJSON(upd); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[upd.Token], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders/:token
func (h *StatusHub) HandleWebSocket(c *gin.Context) {
	token := c.Param("token")

	// the token must resolve to a real order
	view, err := h.orders.TrackByToken(token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// current status first, then live updates
	if err := conn.WriteJSON(StatusUpdate{Token: token, Status: view.Status, At: time.Now()}); err != nil {
		conn.Close()
		return
	}

	sub := Subscription{Conn: conn, Token: token}
	h.register <- sub

	go h.keepAlive(sub)
}

// keepAlive drains client frames until the connection drops.
func (h *StatusHub) keepAlive(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
