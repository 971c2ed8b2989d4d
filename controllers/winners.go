package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tsmarsh/family-bingo/game"
	"github.com/tsmarsh/family-bingo/services"
	"gorm.io/gorm"
)

// ListWinners returns recorded winners for an event
func ListWinners(c *gin.Context) {
	winners, err := store.Winners(c.Param("event_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, winners)
}

// RecordWinner imports a scanned winner token
func RecordWinner(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := services.DecodeWinnerToken(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	winner, err := store.RecordWinner(payload.EventID, payload.PlayerName, payload.Timestamp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record winner"})
		return
	}
	c.JSON(http.StatusCreated, winner)
}

// GetWinnerQR renders a winner token QR for a player to show the host
func GetWinnerQR(c *gin.Context) {
	eventID := c.Query("event_id")
	player := c.Query("player")
	if eventID == "" || player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_id and player are required"})
		return
	}

	// Only issue a winner QR while the player's card actually holds a bingo.
	_, card, err := store.GetOrGenerateCard(eventID, player)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load card"})
		return
	}
	if !game.CheckBingo(card.Cells, card.Rows, card.Cols) {
		c.JSON(http.StatusConflict, gin.H{"error": "No bingo on this card"})
		return
	}

	winners, _ := store.Winners(eventID)
	ts := time.Now().UnixMilli()
	for _, w := range winners {
		if w.PlayerName == player {
			ts = w.Timestamp
		}
	}

	token, err := services.EncodeWinnerToken(services.WinnerPayload{
		Schema:     services.ShareSchemaVersion,
		Type:       services.WinnerPayloadType,
		EventID:    eventID,
		PlayerName: player,
		Timestamp:  ts,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode winner token"})
		return
	}

	size := defaultQRSize
	if s, err := strconv.Atoi(c.Query("size")); err == nil && s > 0 {
		size = s
	}

	png, err := services.QRPNG(token, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
