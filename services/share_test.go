package services

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsmarsh/family-bingo/game"
)

func samplePayload() SharePayload {
	return SharePayload{
		Schema: ShareSchemaVersion,
		GameConfig: GameConfig{Relatives: []game.Relative{
			{Name: "Grandma", Phrases: []string{"Eat more", "Who wants pie"}},
			{Name: "Uncle Joe", Phrases: []string{"Stocks are up"}},
		}},
		EventConfig: EventConfig{
			EventID:            "thanksgiving2024",
			MaxRelatives:       4,
			PhrasesPerRelative: 3,
		},
	}
}

func TestShareTokenRoundTrip(t *testing.T) {
	token, err := EncodeShareToken(samplePayload())
	require.NoError(t, err)

	decoded, err := DecodeShareToken(token)
	require.NoError(t, err)
	assert.Equal(t, samplePayload(), decoded)
}

func TestDecodeShareTokenRejectsUnknownSchema(t *testing.T) {
	p := samplePayload()
	p.Schema = 2
	b, err := json.Marshal(p)
	require.NoError(t, err)
	token := base64.RawURLEncoding.EncodeToString(b)

	_, err = DecodeShareToken(token)
	assert.ErrorContains(t, err, "unsupported share schema")
}

func TestDecodeShareTokenRejectsGarbage(t *testing.T) {
	_, err := DecodeShareToken("!!!not-base64!!!")
	assert.Error(t, err)

	_, err = DecodeShareToken(base64.RawURLEncoding.EncodeToString([]byte("not json")))
	assert.Error(t, err)
}

func TestWinnerTokenRoundTrip(t *testing.T) {
	payload := WinnerPayload{
		Schema:     ShareSchemaVersion,
		Type:       WinnerPayloadType,
		EventID:    "thanksgiving2024",
		PlayerName: "Alice",
		Timestamp:  1732400000000,
	}
	token, err := EncodeWinnerToken(payload)
	require.NoError(t, err)

	decoded, err := DecodeWinnerToken(token)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeWinnerTokenRejectsWrongType(t *testing.T) {
	payload := WinnerPayload{Schema: ShareSchemaVersion, Type: "loser", EventID: "x", PlayerName: "y"}
	b, err := json.Marshal(payload)
	require.NoError(t, err)

	_, err = DecodeWinnerToken(base64.RawURLEncoding.EncodeToString(b))
	assert.ErrorContains(t, err, "unsupported winner payload")
}

func TestQRPNG(t *testing.T) {
	token, err := EncodeShareToken(samplePayload())
	require.NoError(t, err)

	png, err := QRPNG(token, 256)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestBuildSharePayloadFromStore(t *testing.T) {
	s := newTestStore(t)
	seedConfig(t, s, 3, 3)

	payload, err := s.BuildSharePayload("thanksgiving2024")
	require.NoError(t, err)
	assert.Equal(t, ShareSchemaVersion, payload.Schema)
	assert.Equal(t, "thanksgiving2024", payload.EventConfig.EventID)
	assert.Len(t, payload.GameConfig.Relatives, 3)

	// A joined device generates identical cards from the imported payload.
	other := newTestStore(t)
	require.NoError(t, other.ImportShare(payload))
	_, original, err := s.GetOrGenerateCard("thanksgiving2024", "Alice")
	require.NoError(t, err)
	_, joined, err := other.GetOrGenerateCard("thanksgiving2024", "Alice")
	require.NoError(t, err)
	assert.Equal(t, original, joined)
}
