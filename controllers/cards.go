package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tsmarsh/family-bingo/game"
	"gorm.io/gorm"
)

// GetCard returns the card for (event_id, player), generating it on first
// request. The same pair always yields the same card.
func GetCard(c *gin.Context) {
	eventID := c.Query("event_id")
	player := c.Query("player")
	if eventID == "" || player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_id and player are required"})
		return
	}

	_, card, err := store.GetOrGenerateCard(eventID, player)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load card"})
		return
	}
	c.JSON(http.StatusOK, cardResponse(card))
}

// ToggleCell flips one cell and reports whether the card now holds a bingo
func ToggleCell(c *gin.Context) {
	var req struct {
		EventID   string `json:"event_id" binding:"required"`
		Player    string `json:"player" binding:"required"`
		CellIndex *int   `json:"cell_index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, bingo, err := store.ToggleCell(req.EventID, req.Player, *req.CellIndex)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := cardResponse(card)
	resp["bingo"] = bingo
	c.JSON(http.StatusOK, resp)
}

// ResetCard unchecks every cell on the player's card
func ResetCard(c *gin.Context) {
	var req struct {
		EventID string `json:"event_id" binding:"required"`
		Player  string `json:"player" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := store.ResetCard(req.EventID, req.Player)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset card"})
		return
	}
	c.JSON(http.StatusOK, cardResponse(card))
}

func cardResponse(card game.Card) gin.H {
	return gin.H{
		"cells": card.Cells,
		"rows":  card.Rows,
		"cols":  card.Cols,
		"line":  game.WinningLine(card.Cells, card.Rows, card.Cols),
	}
}
