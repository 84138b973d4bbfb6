package websocket

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shaikhmoiz3010/pointsolution-server/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and registers the client with
// the hub. Connections start unauthenticated; the client sends
// "AUTH:<token>" as its first message to start receiving booking events.
func HandleWebSocket(c echo.Context, hub *Hub) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{Conn: conn}
	hub.register <- client

	client.WriteJSON(Notification{
		Type:         "connected",
		Message:      "WebSocket connection established. Authenticate to receive booking updates.",
		RequiresAuth: true,
	})

	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				break
			}

			if messageType != websocket.TextMessage {
				continue
			}

			messageStr := string(message)
			if !strings.HasPrefix(messageStr, "AUTH:") {
				continue
			}

			claims, err := utils.ParseToken(strings.TrimPrefix(messageStr, "AUTH:"))
			if err != nil {
				client.WriteJSON(Notification{
					Type:         "auth_response",
					Message:      "Authentication failed: invalid or expired token",
					RequiresAuth: true,
				})
				continue
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				client.WriteJSON(Notification{
					Type:         "auth_response",
					Message:      "Authentication failed: malformed user id",
					RequiresAuth: true,
				})
				continue
			}

			hub.AuthenticateClient(client, userID)
			client.WriteJSON(Notification{
				Type:    "auth_response",
				Message: "Authenticated. You will receive updates for your bookings.",
				UserID:  userID.Hex(),
			})
		}
	}()

	return nil
}
