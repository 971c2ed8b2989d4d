package models

import (
	"time"

	"gorm.io/datatypes"
)

// Relative is a configured family member and their catchphrases. Phrases is
// a JSON array of strings; order is preserved because it feeds the
// deterministic card generator.
type Relative struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Phrases   datatypes.JSON `json:"phrases"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
