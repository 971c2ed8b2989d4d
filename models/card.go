package models

import (
	"time"

	"gorm.io/datatypes"
)

// Card is a generated grid persisted per (event, player, limits). The limits
// are part of the key: changing either produces a different card, so the old
// one must not be served. Cells is the row-major JSON cell array; only the
// checked flags change after creation.
type Card struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	EventID            string         `gorm:"uniqueIndex:idx_card_key" json:"event_id"`
	PlayerName         string         `gorm:"uniqueIndex:idx_card_key" json:"player_name"`
	MaxRelatives       int            `gorm:"uniqueIndex:idx_card_key" json:"max_relatives"`
	PhrasesPerRelative int            `gorm:"uniqueIndex:idx_card_key" json:"phrases_per_relative"`
	Rows               int            `json:"rows"`
	Cols               int            `json:"cols"`
	Cells              datatypes.JSON `json:"cells"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
