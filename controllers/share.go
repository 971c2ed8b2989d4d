package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tsmarsh/family-bingo/services"
	"gorm.io/gorm"
)

const defaultQRSize = 256

// GetShareToken returns the share payload and its encoded token for an event
func GetShareToken(c *gin.Context) {
	payload, err := store.BuildSharePayload(c.Param("event_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build share payload"})
		return
	}

	token, err := services.EncodeShareToken(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode share token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "payload": payload})
}

// GetShareQR renders the share token as a QR code PNG
func GetShareQR(c *gin.Context) {
	payload, err := store.BuildSharePayload(c.Param("event_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build share payload"})
		return
	}

	token, err := services.EncodeShareToken(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode share token"})
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

// JoinFromToken imports a scanned share token, replacing the local relatives
// and event configuration with the payload's.
func JoinFromToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := services.DecodeShareToken(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.ImportShare(payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import share payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_id": payload.EventConfig.EventID, "relatives": len(payload.GameConfig.Relatives)})
}
