package models

import "time"

// Winner records a bingo for an event, either detected locally when a toggle
// completes a line or imported from a scanned winner payload. Timestamp is
// Unix milliseconds as carried in the payload.
type Winner struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    string    `gorm:"index" json:"event_id"`
	PlayerName string    `json:"player_name"`
	Timestamp  int64     `json:"timestamp"`
	CreatedAt  time.Time `json:"created_at"`
}
