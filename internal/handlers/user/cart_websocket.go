package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the storefront origin before exposing publicly
		return true
	},
}

// CartWebSocket streams cart updates to the browser. Each cart mutation
// publishes on the user's Redis channel; this connection relays the
// current cart state on every notification.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, cartKey(userID))
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{"type": "connected", "message": "Cart sync active"})

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			items := []models.CartItem{}
			if data, err := database.Redis.Get(ctx, cartKey(userID)).Result(); err == nil && data != "" {
				json.Unmarshal([]byte(data), &items)
			}

			count := 0
			total := 0.0
			for _, item := range items {
				count += item.Quantity
				total += item.Price * float64(item.Quantity)
			}

			if err := conn.WriteJSON(gin.H{
				"type":  "cart_updated",
				"items": items,
				"count": count,
				"total": total,
			}); err != nil {
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
