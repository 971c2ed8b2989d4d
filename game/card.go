package game

// EmptyPhrase fills the shortfall when a relative has fewer phrases than the
// card has columns.
const EmptyPhrase = "(empty)"

// Relative is a named person with their catchphrases.
type Relative struct {
	Name    string   `json:"name"`
	Phrases []string `json:"phrases"`
}

// Cell is one square on a card. Only Checked changes after generation.
type Cell struct {
	Relative string `json:"relative"`
	Phrase   string `json:"phrase"`
	Checked  bool   `json:"checked"`
}

// Card is the row-major grid generated for one player in one event.
// len(Cells) == Rows*Cols; a card with no usable relatives is 0x0.
type Card struct {
	Cells []Cell `json:"cells"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
}

// Generate builds the deterministic card for (eventID, playerName). All
// randomness comes from a single RNG seeded once from the pair, and the
// relative shuffle always precedes the per-relative phrase shuffles, so the
// same inputs produce the same card on every call.
//
// Each selected relative contributes one row of phrasesPerRelative cells,
// padded with EmptyPhrase when it has too few phrases; rows never borrow
// phrases from other relatives. Limits are assumed non-negative, callers
// clamp at the boundary.
func Generate(eventID, playerName string, relatives []Relative, maxRelatives, phrasesPerRelative int) Card {
	rng := NewRNG(Seed(eventID, playerName))

	valid := make([]Relative, 0, len(relatives))
	for _, rel := range relatives {
		if len(rel.Phrases) > 0 {
			valid = append(valid, rel)
		}
	}
	if len(valid) == 0 {
		return Card{Cells: []Cell{}}
	}

	selected := Shuffle(valid, rng)[:min(maxRelatives, len(valid))]

	cells := make([]Cell, 0, len(selected)*phrasesPerRelative)
	for _, rel := range selected {
		phrases := Shuffle(rel.Phrases, rng)
		take := min(phrasesPerRelative, len(phrases))
		for _, phrase := range phrases[:take] {
			cells = append(cells, Cell{Relative: rel.Name, Phrase: phrase})
		}
		for pad := take; pad < phrasesPerRelative; pad++ {
			cells = append(cells, Cell{Relative: rel.Name, Phrase: EmptyPhrase})
		}
	}

	return Card{Cells: cells, Rows: len(selected), Cols: phrasesPerRelative}
}
