package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaveEvent creates or updates an event configuration. Missing limits fall
// back to defaults, negatives are clamped to zero before they can reach the
// generator.
func SaveEvent(c *gin.Context) {
	var req struct {
		EventID            string `json:"event_id" binding:"required"`
		MaxRelatives       *int   `json:"max_relatives"`
		PhrasesPerRelative *int   `json:"phrases_per_relative"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := store.SaveEvent(req.EventID, req.MaxRelatives, req.PhrasesPerRelative)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// GetEvent fetches an event configuration by event id
func GetEvent(c *gin.Context) {
	event, err := store.GetEvent(c.Param("event_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, event)
}
