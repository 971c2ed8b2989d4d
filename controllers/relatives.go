package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateRelative adds a relative with an optional starting phrase list
func CreateRelative(c *gin.Context) {
	var req struct {
		Name    string   `json:"name" binding:"required"`
		Phrases []string `json:"phrases"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rel, err := store.CreateRelative(req.Name, req.Phrases)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create relative"})
		return
	}
	c.JSON(http.StatusCreated, rel)
}

// ListRelatives returns all configured relatives
func ListRelatives(c *gin.Context) {
	relatives, err := store.ListRelatives()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, relatives)
}

// AddPhrase appends a phrase to a relative
func AddPhrase(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid relative id"})
		return
	}

	var req struct {
		Phrase string `json:"phrase" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rel, err := store.AddPhrase(uint(id), req.Phrase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Relative not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add phrase"})
		return
	}
	c.JSON(http.StatusOK, rel)
}

// RemovePhrase deletes a phrase from a relative
func RemovePhrase(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid relative id"})
		return
	}

	var req struct {
		Phrase string `json:"phrase" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rel, err := store.RemovePhrase(uint(id), req.Phrase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Relative not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove phrase"})
		return
	}
	c.JSON(http.StatusOK, rel)
}

// DeleteRelative removes a relative entirely
func DeleteRelative(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid relative id"})
		return
	}

	if err := store.DeleteRelative(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete relative"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
