package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tsmarsh/family-bingo/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket joins a player to an event lobby over a websocket.
func HandleWebSocket(c *gin.Context) {
	eventID := c.Param("event_id")
	player := c.Query("player")
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing player query param"})
		return
	}

	if _, err := lobbyStore.GetEvent(eventID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	lobby := GetLobby(eventID)
	client := &Client{
		id:     uuid.New().String(),
		player: player,
		conn:   conn,
		lobby:  lobby,
		send:   make(chan []byte, 32),
	}
	logger.Infof("[WS] new client: player=%s event=%s", player, eventID)

	lobby.addClient(client)
}
