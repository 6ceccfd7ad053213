package handlers

import (
	"net/http"
	"time"

	"worldconnect/internal/live"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type LiveHandler struct {
	hub *live.Hub
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// subscribeMsg is a client control frame. "subscribe" replaces the
// subscription held under key; "unsubscribe" drops it. This mirrors how
// the web client swaps its comment and reply channels when the viewed
// article changes.
type subscribeMsg struct {
	Action    string `json:"action"`
	Key       string `json:"key"`
	Table     string `json:"table"`
	ArticleID string `json:"article_id"`
}

// Serve upgrades to websocket and streams change events for the tables
// the client subscribes to. A signed-in client also receives its own
// notification events.
func (h *LiveHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	registry := live.NewRegistry(h.hub)
	out := make(chan live.Event, 256)
	done := make(chan struct{})

	// Every subscription forwards into one shared channel so the
	// connection has a single writer.
	forward := func(sub *live.Subscription) {
		go func() {
			for ev := range sub.C {
				select {
				case out <- ev:
				case <-done:
					return
				}
			}
		}()
	}

	if user := CurrentUser(c); user != nil {
		forward(registry.Register("notifications", "notifications", "", user.UID))
	}

	// ?article_id= pre-subscribes to the collections the article view
	// watches, before any control frame arrives.
	if aid := c.Query("article_id"); aid != "" {
		for _, table := range []string{"comments", "replies", "reactions"} {
			forward(registry.Register(table, table, aid, ""))
		}
	}

	// Reader: control frames from the client.
	go func() {
		defer close(done)
		conn.SetReadLimit(4096)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			var msg subscribeMsg
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			switch msg.Action {
			case "subscribe":
				if msg.Key == "" || msg.Table == "" {
					continue
				}
				forward(registry.Register(msg.Key, msg.Table, msg.ArticleID, ""))
			case "unsubscribe":
				registry.Release(msg.Key)
			}
		}
	}()

	// Writer: events and pings.
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		registry.ReleaseAll()
		conn.Close()
	}()

	for {
		select {
		case ev := <-out:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
