package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tsmarsh/family-bingo/game"
	"github.com/tsmarsh/family-bingo/models"
	"github.com/tsmarsh/family-bingo/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultMaxRelatives       = 5
	DefaultPhrasesPerRelative = 5
)

// Store owns all persistence around the core generator/detector: relatives,
// event configuration, generated cards and winners. The core never touches
// the database; this layer maps records to plain game values and back.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// -------------------- JSON column codecs --------------------

func encodePhrases(phrases []string) datatypes.JSON {
	if phrases == nil {
		phrases = []string{}
	}
	b, _ := json.Marshal(phrases)
	return datatypes.JSON(b)
}

// decodePhrases degrades malformed stored JSON to an empty list instead of
// letting a parse failure reach the generator.
func decodePhrases(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var phrases []string
	if err := json.Unmarshal(raw, &phrases); err != nil {
		logger.Warnf("dropping malformed phrase list: %v", err)
		return nil
	}
	return phrases
}

func encodeCells(cells []game.Cell) datatypes.JSON {
	if cells == nil {
		cells = []game.Cell{}
	}
	b, _ := json.Marshal(cells)
	return datatypes.JSON(b)
}

func decodeCells(raw datatypes.JSON) ([]game.Cell, bool) {
	var cells []game.Cell
	if err := json.Unmarshal(raw, &cells); err != nil {
		logger.Warnf("dropping malformed card cells: %v", err)
		return nil, false
	}
	return cells, true
}

// -------------------- Relatives --------------------

func (s *Store) ListRelatives() ([]models.Relative, error) {
	var relatives []models.Relative
	if err := s.db.Order("id").Find(&relatives).Error; err != nil {
		return nil, err
	}
	return relatives, nil
}

func (s *Store) CreateRelative(name string, phrases []string) (models.Relative, error) {
	rel := models.Relative{Name: name, Phrases: encodePhrases(phrases)}
	if err := s.db.Create(&rel).Error; err != nil {
		return models.Relative{}, err
	}
	return rel, nil
}

func (s *Store) AddPhrase(id uint, phrase string) (models.Relative, error) {
	var rel models.Relative
	if err := s.db.First(&rel, id).Error; err != nil {
		return models.Relative{}, err
	}
	phrases := append(decodePhrases(rel.Phrases), phrase)
	rel.Phrases = encodePhrases(phrases)
	if err := s.db.Save(&rel).Error; err != nil {
		return models.Relative{}, err
	}
	return rel, nil
}

func (s *Store) RemovePhrase(id uint, phrase string) (models.Relative, error) {
	var rel models.Relative
	if err := s.db.First(&rel, id).Error; err != nil {
		return models.Relative{}, err
	}
	kept := []string{}
	for _, p := range decodePhrases(rel.Phrases) {
		if p != phrase {
			kept = append(kept, p)
		}
	}
	rel.Phrases = encodePhrases(kept)
	if err := s.db.Save(&rel).Error; err != nil {
		return models.Relative{}, err
	}
	return rel, nil
}

func (s *Store) DeleteRelative(id uint) error {
	return s.db.Delete(&models.Relative{}, id).Error
}

// GameRelatives maps the stored configuration to the core's plain values,
// in insertion order so generation stays deterministic.
func (s *Store) GameRelatives() ([]game.Relative, error) {
	records, err := s.ListRelatives()
	if err != nil {
		return nil, err
	}
	relatives := make([]game.Relative, 0, len(records))
	for _, rec := range records {
		relatives = append(relatives, game.Relative{
			Name:    rec.Name,
			Phrases: decodePhrases(rec.Phrases),
		})
	}
	return relatives, nil
}

// -------------------- Events --------------------

// clampLimit coerces a missing or negative limit to something the generator
// can take: nil falls back to the default, negatives clamp to zero.
func clampLimit(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	if *v < 0 {
		return 0
	}
	return *v
}

// SaveEvent upserts the configuration for an event id.
func (s *Store) SaveEvent(eventID string, maxRelatives, phrasesPerRelative *int) (models.Event, error) {
	var event models.Event
	err := s.db.Where("event_id = ?", eventID).First(&event).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Event{}, err
	}
	event.EventID = eventID
	event.MaxRelatives = clampLimit(maxRelatives, DefaultMaxRelatives)
	event.PhrasesPerRelative = clampLimit(phrasesPerRelative, DefaultPhrasesPerRelative)
	if err := s.db.Save(&event).Error; err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (s *Store) GetEvent(eventID string) (models.Event, error) {
	var event models.Event
	if err := s.db.Where("event_id = ?", eventID).First(&event).Error; err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// -------------------- Cards --------------------

// GetOrGenerateCard returns the persisted card for (event, player) under the
// event's current limits, generating and storing one on first request. A
// stored card whose cells no longer parse is regenerated rather than served
// broken.
func (s *Store) GetOrGenerateCard(eventID, playerName string) (models.Card, game.Card, error) {
	event, err := s.GetEvent(eventID)
	if err != nil {
		return models.Card{}, game.Card{}, err
	}

	var rec models.Card
	err = s.db.Where(
		"event_id = ? AND player_name = ? AND max_relatives = ? AND phrases_per_relative = ?",
		eventID, playerName, event.MaxRelatives, event.PhrasesPerRelative,
	).First(&rec).Error

	if err == nil {
		if cells, ok := decodeCells(rec.Cells); ok {
			return rec, game.Card{Cells: cells, Rows: rec.Rows, Cols: rec.Cols}, nil
		}
		// fall through and regenerate over the corrupt row
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Card{}, game.Card{}, err
	} else {
		rec = models.Card{
			EventID:            eventID,
			PlayerName:         playerName,
			MaxRelatives:       event.MaxRelatives,
			PhrasesPerRelative: event.PhrasesPerRelative,
		}
	}

	relatives, err := s.GameRelatives()
	if err != nil {
		return models.Card{}, game.Card{}, err
	}
	card := game.Generate(eventID, playerName, relatives, event.MaxRelatives, event.PhrasesPerRelative)

	rec.Rows = card.Rows
	rec.Cols = card.Cols
	rec.Cells = encodeCells(card.Cells)
	if err := s.db.Save(&rec).Error; err != nil {
		return models.Card{}, game.Card{}, err
	}

	logger.Infof("generated card for %s@%s (%dx%d)", playerName, eventID, card.Rows, card.Cols)
	return rec, card, nil
}

// ToggleCell flips one cell's checked state, persists the card and runs the
// bingo detector over the updated grid. A toggle that completes a line also
// records the winner.
func (s *Store) ToggleCell(eventID, playerName string, index int) (game.Card, bool, error) {
	rec, card, err := s.GetOrGenerateCard(eventID, playerName)
	if err != nil {
		return game.Card{}, false, err
	}
	if index < 0 || index >= len(card.Cells) {
		return game.Card{}, false, fmt.Errorf("cell index %d out of range for %d cells", index, len(card.Cells))
	}

	card.Cells[index].Checked = !card.Cells[index].Checked
	rec.Cells = encodeCells(card.Cells)
	if err := s.db.Save(&rec).Error; err != nil {
		return game.Card{}, false, err
	}

	bingo := game.CheckBingo(card.Cells, card.Rows, card.Cols)
	if bingo && card.Cells[index].Checked {
		if _, err := s.RecordWinner(eventID, playerName, time.Now().UnixMilli()); err != nil {
			logger.Errorf("failed to record winner %s@%s: %v", playerName, eventID, err)
		}
	}
	return card, bingo, nil
}

// ResetCard unchecks every cell, keeping the generated layout.
func (s *Store) ResetCard(eventID, playerName string) (game.Card, error) {
	rec, card, err := s.GetOrGenerateCard(eventID, playerName)
	if err != nil {
		return game.Card{}, err
	}
	for i := range card.Cells {
		card.Cells[i].Checked = false
	}
	rec.Cells = encodeCells(card.Cells)
	if err := s.db.Save(&rec).Error; err != nil {
		return game.Card{}, err
	}
	return card, nil
}

// -------------------- Winners --------------------

func (s *Store) Winners(eventID string) ([]models.Winner, error) {
	var winners []models.Winner
	if err := s.db.Where("event_id = ?", eventID).Order("timestamp").Find(&winners).Error; err != nil {
		return nil, err
	}
	return winners, nil
}

// RecordWinner stores one winner row per (event, player); repeated bingos or
// re-scanned winner codes do not duplicate it.
func (s *Store) RecordWinner(eventID, playerName string, timestamp int64) (models.Winner, error) {
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}
	var winner models.Winner
	err := s.db.Where("event_id = ? AND player_name = ?", eventID, playerName).First(&winner).Error
	if err == nil {
		return winner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Winner{}, err
	}
	winner = models.Winner{EventID: eventID, PlayerName: playerName, Timestamp: timestamp}
	if err := s.db.Create(&winner).Error; err != nil {
		return models.Winner{}, err
	}
	logger.Infof("recorded winner %s@%s", playerName, eventID)
	return winner, nil
}
