package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tsmarsh/family-bingo/controllers"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Relative routes
	// ----------------------
	api.POST("/relatives", controllers.CreateRelative)              // Create relative
	api.GET("/relatives", controllers.ListRelatives)                // List relatives
	api.POST("/relatives/:id/phrases", controllers.AddPhrase)       // Add a phrase
	api.DELETE("/relatives/:id/phrases", controllers.RemovePhrase)  // Remove a phrase
	api.DELETE("/relatives/:id", controllers.DeleteRelative)        // Delete relative

	// ----------------------
	// Event routes
	// ----------------------
	api.PUT("/event", controllers.SaveEvent)              // Set event config
	api.GET("/event/:event_id", controllers.GetEvent)     // Get event config

	// ----------------------
	// Card routes
	// ----------------------
	api.GET("/cards", controllers.GetCard)            // Get/generate a player's card
	api.POST("/cards/toggle", controllers.ToggleCell) // Toggle one cell
	api.POST("/cards/reset", controllers.ResetCard)   // Uncheck all cells

	// ----------------------
	// Share routes
	// ----------------------
	api.GET("/share/:event_id", controllers.GetShareToken) // Share token + payload
	api.GET("/share/:event_id/qr", controllers.GetShareQR) // Share QR PNG
	api.POST("/join", controllers.JoinFromToken)           // Import a share token

	// ----------------------
	// Winner routes
	// ----------------------
	api.GET("/winners/:event_id", controllers.ListWinners) // Winners for an event
	api.POST("/winners", controllers.RecordWinner)         // Import scanned winner token
	api.GET("/winner-qr", controllers.GetWinnerQR)         // Winner QR for a player
}
