// FILE: internal/transport/http/websocket.go
package http

import (
	"log"

	"chess/internal/core"

	"github.com/gofiber/websocket/v2"
)

// Stream pushes the current position once, then a frame per accepted move until
// the client disconnects or the game is deleted. Incoming messages are ignored
func (h *HTTPHandler) Stream(c *websocket.Conn) {
	gameID := c.Params("gameId")

	unsubscribe, err := h.svc.Subscribe(gameID, c)
	if err != nil {
		if werr := c.WriteJSON(core.ErrorResponse{Error: "game not found", Code: core.ErrGameNotFound}); werr != nil {
			log.Printf("websocket write error for game %s: %v", gameID, werr)
		}
		return
	}
	defer unsubscribe()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read error for game %s: %v", gameID, err)
			}
			return
		}
	}
}
