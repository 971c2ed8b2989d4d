package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tsmarsh/family-bingo/utils/logger"
)

// Client is one websocket connection for a player in an event lobby. The
// same player may hold several connections (phone and tablet), so clients
// are keyed by a connection id rather than the player name.
type Client struct {
	id     string
	player string
	conn   *websocket.Conn
	lobby  *Lobby
	send   chan []byte
	once   sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// --------------------
// Client read/write pumps
// --------------------

func (c *Client) readPump() {
	defer func() {
		c.lobby.removeClient(c.id)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Client %s] disconnected normally", c.player)
			} else {
				logger.Errorf("[Client %s] read error: %v", c.player, err)
			}
			return
		}
		c.handleMessage(message)
	}
}

func (c *Client) handleMessage(msg []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[Client %s] recovered from panic: %v", c.player, r)
		}
	}()

	var data map[string]any
	if err := json.Unmarshal(msg, &data); err != nil {
		logger.Errorf("[Client %s] invalid message: %v", c.player, err)
		return
	}

	switch data["action"] {
	case "toggle_cell":
		idxFloat, ok := data["cell_index"].(float64)
		if !ok {
			logger.Errorf("[Client %s] invalid cell_index: %v", c.player, data["cell_index"])
			return
		}
		card, bingo, err := c.lobby.store.ToggleCell(c.lobby.EventID, c.player, int(idxFloat))
		if err != nil {
			logger.Errorf("[Client %s] toggle failed: %v", c.player, err)
			return
		}
		c.lobby.pushCard(c, card)
		if bingo {
			// ToggleCell already recorded the winner; tell the room.
			c.lobby.broadcastState()
		}
	case "reset_card":
		card, err := c.lobby.store.ResetCard(c.lobby.EventID, c.player)
		if err != nil {
			logger.Errorf("[Client %s] reset failed: %v", c.player, err)
			return
		}
		c.lobby.pushCard(c, card)
	default:
		logger.Errorf("[Client %s] unknown action: %v", c.player, data["action"])
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Errorf("[Client %s] write error: %v", c.player, err)
			return
		}
	}
}
