package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"
	"github.com/tsmarsh/family-bingo/game"
	"github.com/tsmarsh/family-bingo/models"
	"gorm.io/gorm"
)

const (
	ShareSchemaVersion = 1
	WinnerPayloadType  = "winner"
)

// GameConfig carries the relative/phrase data a second device needs to join
// an event with identical cards.
type GameConfig struct {
	Relatives []game.Relative `json:"relatives"`
}

type EventConfig struct {
	EventID            string `json:"eventId"`
	MaxRelatives       int    `json:"maxRelatives"`
	PhrasesPerRelative int    `json:"phrasesPerRelative"`
}

// SharePayload is the versioned bundle encoded into share links and QR
// codes. Tokens are trusted client input; the schema check is the only
// validation performed here.
type SharePayload struct {
	Schema      int         `json:"schema"`
	GameConfig  GameConfig  `json:"gameConfig"`
	EventConfig EventConfig `json:"eventConfig"`
}

// WinnerPayload is produced when a player's card reports bingo, for the host
// to scan back in.
type WinnerPayload struct {
	Schema     int    `json:"schema"`
	Type       string `json:"type"`
	EventID    string `json:"eventId"`
	PlayerName string `json:"playerName"`
	Timestamp  int64  `json:"timestamp"`
}

// BuildSharePayload assembles the current configuration for an event.
func (s *Store) BuildSharePayload(eventID string) (SharePayload, error) {
	event, err := s.GetEvent(eventID)
	if err != nil {
		return SharePayload{}, err
	}
	relatives, err := s.GameRelatives()
	if err != nil {
		return SharePayload{}, err
	}
	return SharePayload{
		Schema:     ShareSchemaVersion,
		GameConfig: GameConfig{Relatives: relatives},
		EventConfig: EventConfig{
			EventID:            event.EventID,
			MaxRelatives:       event.MaxRelatives,
			PhrasesPerRelative: event.PhrasesPerRelative,
		},
	}, nil
}

// ImportShare replaces the local configuration with a decoded share payload:
// all relatives are swapped for the payload's and the event config is
// upserted with its limits clamped to non-negative values.
func (s *Store) ImportShare(p SharePayload) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		inner := &Store{db: tx}
		if err := tx.Where("1 = 1").Delete(&models.Relative{}).Error; err != nil {
			return err
		}
		for _, rel := range p.GameConfig.Relatives {
			if _, err := inner.CreateRelative(rel.Name, rel.Phrases); err != nil {
				return err
			}
		}
		maxRel := p.EventConfig.MaxRelatives
		perRel := p.EventConfig.PhrasesPerRelative
		_, err := inner.SaveEvent(p.EventConfig.EventID, &maxRel, &perRel)
		return err
	})
}

// EncodeShareToken serializes a payload as base64url(JSON).
func EncodeShareToken(p SharePayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeShareToken parses a token and rejects unknown schema versions before
// any configuration is derived from it.
func DecodeShareToken(token string) (SharePayload, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return SharePayload{}, fmt.Errorf("invalid share token: %w", err)
	}
	var p SharePayload
	if err := json.Unmarshal(b, &p); err != nil {
		return SharePayload{}, fmt.Errorf("invalid share payload: %w", err)
	}
	if p.Schema != ShareSchemaVersion {
		return SharePayload{}, fmt.Errorf("unsupported share schema %d", p.Schema)
	}
	return p, nil
}

func EncodeWinnerToken(p WinnerPayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeWinnerToken(token string) (WinnerPayload, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return WinnerPayload{}, fmt.Errorf("invalid winner token: %w", err)
	}
	var p WinnerPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return WinnerPayload{}, fmt.Errorf("invalid winner payload: %w", err)
	}
	if p.Schema != ShareSchemaVersion || p.Type != WinnerPayloadType {
		return WinnerPayload{}, fmt.Errorf("unsupported winner payload (schema %d, type %q)", p.Schema, p.Type)
	}
	return p, nil
}

// QRPNG renders a token as a PNG QR code, size pixels per side.
func QRPNG(token string, size int) ([]byte, error) {
	return qrcode.Encode(token, qrcode.Medium, size)
}
