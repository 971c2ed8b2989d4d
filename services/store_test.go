package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsmarsh/family-bingo/config"
	"github.com/tsmarsh/family-bingo/game"
	"github.com/tsmarsh/family-bingo/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return NewStore(db)
}

func seedConfig(t *testing.T, s *Store, maxRelatives, phrasesPerRelative int) {
	t.Helper()
	_, err := s.CreateRelative("Grandma", []string{"Back in my day", "Eat more", "Who wants pie"})
	require.NoError(t, err)
	_, err = s.CreateRelative("Uncle Joe", []string{"Let me tell you", "Stocks are up"})
	require.NoError(t, err)
	_, err = s.CreateRelative("Aunt Sue", []string{"Bless your heart"})
	require.NoError(t, err)

	_, err = s.SaveEvent("thanksgiving2024", &maxRelatives, &phrasesPerRelative)
	require.NoError(t, err)
}

func TestGetOrGenerateCardDeterministic(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 3, 3)

	_, first, err := s.GetOrGenerateCard("thanksgiving2024", "Alice")
	require.NoError(t, err)
	_, second, err := s.GetOrGenerateCard("thanksgiving2024", "Alice")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, s.db.Model(&models.Card{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "second fetch must reuse the stored card")
}

func TestGetOrGenerateCardShape(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 5, 2)

	_, card, err := s.GetOrGenerateCard("thanksgiving2024", "Bob")
	require.NoError(t, err)
	assert.Equal(t, 3, card.Rows, "rows capped at valid relative count")
	assert.Equal(t, 2, card.Cols)
	assert.Len(t, card.Cells, 6)
}

func TestGetOrGenerateCardUnknownEvent(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.GetOrGenerateCard("nope", "Alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCardRegeneratedWhenLimitsChange(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 3, 3)

	_, before, err := s.GetOrGenerateCard("thanksgiving2024", "Alice")
	require.NoError(t, err)

	maxRel, perRel := 2, 2
	_, err = s.SaveEvent("thanksgiving2024", &maxRel, &perRel)
	require.NoError(t, err)

	_, after, err := s.GetOrGenerateCard("thanksgiving2024", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 2, after.Rows)
	assert.Equal(t, 2, after.Cols)
	assert.NotEqual(t, before, after)
}

func TestToggleCellPersists(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 3, 3)

	card, bingo, err := s.ToggleCell("thanksgiving2024", "Alice", 4)
	require.NoError(t, err)
	assert.True(t, card.Cells[4].Checked)
	assert.False(t, bingo)

	_, reloaded, err := s.GetOrGenerateCard("thanksgiving2024", "Alice")
	require.NoError(t, err)
	assert.True(t, reloaded.Cells[4].Checked)

	card, _, err = s.ToggleCell("thanksgiving2024", "Alice", 4)
	require.NoError(t, err)
	assert.False(t, card.Cells[4].Checked)
}

func TestToggleCellOutOfRange(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 3, 3)

	_, _, err := s.ToggleCell("thanksgiving2024", "Alice", 99)
	assert.Error(t, err)
	_, _, err = s.ToggleCell("thanksgiving2024", "Alice", -1)
	assert.Error(t, err)
}

func TestToggleRowCompletionRecordsWinner(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 3, 3)

	var bingo bool
	var err error
	for i := 0; i < 3; i++ {
		_, bingo, err = s.ToggleCell("thanksgiving2024", "Alice", i)
		require.NoError(t, err)
	}
	assert.True(t, bingo, "completing row 0 must report bingo")

	winners, err := s.Winners("thanksgiving2024")
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "Alice", winners[0].PlayerName)
	assert.NotZero(t, winners[0].Timestamp)
}

func TestResetCard(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 3, 3)

	for i := 0; i < 3; i++ {
		_, _, err := s.ToggleCell("thanksgiving2024", "Alice", i)
		require.NoError(t, err)
	}

	card, err := s.ResetCard("thanksgiving2024", "Alice")
	require.NoError(t, err)
	for _, cell := range card.Cells {
		assert.False(t, cell.Checked)
	}

	// Layout survives a reset.
	_, reloaded, err := s.GetOrGenerateCard("thanksgiving2024", "Alice")
	require.NoError(t, err)
	assert.Equal(t, card, reloaded)
}

func TestSaveEventClampsLimits(t *testing.T) {
	s := newTestStore(t)

	neg := -3
	event, err := s.SaveEvent("xmas", &neg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, event.MaxRelatives)
	assert.Equal(t, DefaultPhrasesPerRelative, event.PhrasesPerRelative)

	event, err = s.SaveEvent("xmas", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxRelatives, event.MaxRelatives)
}

func TestGameRelativesToleratesMalformedPhrases(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.db.Create(&models.Relative{
		Name:    "Corrupt",
		Phrases: datatypes.JSON([]byte("not-json")),
	}).Error)
	_, err := s.CreateRelative("Grandma", []string{"Eat more"})
	require.NoError(t, err)

	relatives, err := s.GameRelatives()
	require.NoError(t, err)
	require.Len(t, relatives, 2)
	assert.Empty(t, relatives[0].Phrases, "malformed phrase list degrades to empty")
	assert.Equal(t, []string{"Eat more"}, relatives[1].Phrases)
}

func TestRecordWinnerDedupes(t *testing.T) {
	s := newTestStore(t)

	first, err := s.RecordWinner("xmas", "Alice", 1111)
	require.NoError(t, err)
	second, err := s.RecordWinner("xmas", "Alice", 2222)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1111), second.Timestamp)
}

func TestAddAndRemovePhrase(t *testing.T) {
	s := newTestStore(t)
	rel, err := s.CreateRelative("Grandma", []string{"Eat more"})
	require.NoError(t, err)

	rel, err = s.AddPhrase(rel.ID, "Who wants pie")
	require.NoError(t, err)
	assert.Equal(t, []string{"Eat more", "Who wants pie"}, decodePhrases(rel.Phrases))

	rel, err = s.RemovePhrase(rel.ID, "Eat more")
	require.NoError(t, err)
	assert.Equal(t, []string{"Who wants pie"}, decodePhrases(rel.Phrases))
}

func TestImportShareReplacesConfiguration(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 3, 3)

	payload := SharePayload{
		Schema: ShareSchemaVersion,
		GameConfig: GameConfig{Relatives: []game.Relative{
			{Name: "Cousin Tim", Phrases: []string{"Wifi password?"}},
		}},
		EventConfig: EventConfig{EventID: "nye2025", MaxRelatives: 1, PhrasesPerRelative: 2},
	}
	require.NoError(t, s.ImportShare(payload))

	relatives, err := s.GameRelatives()
	require.NoError(t, err)
	require.Len(t, relatives, 1)
	assert.Equal(t, "Cousin Tim", relatives[0].Name)

	event, err := s.GetEvent("nye2025")
	require.NoError(t, err)
	assert.Equal(t, 1, event.MaxRelatives)
	assert.Equal(t, 2, event.PhrasesPerRelative)
}
