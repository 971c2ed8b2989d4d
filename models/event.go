package models

import "time"

// Event is the shared configuration for one occasion. Two players using the
// same event id and limits always see cards cut from the same rules.
type Event struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	EventID            string    `gorm:"uniqueIndex;not null" json:"event_id"`
	MaxRelatives       int       `json:"max_relatives"`
	PhrasesPerRelative int       `json:"phrases_per_relative"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
