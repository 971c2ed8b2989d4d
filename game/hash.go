package game

import "unicode/utf16"

// Hash maps a string to a non-negative 32-bit seed using the classic
// 31-polynomial hash: h = h*31 + code, truncated to a signed 32-bit integer
// at every step, absolute value at the end. It folds UTF-16 code units so
// non-ASCII player names hash the same as in the reference implementation.
//
// This is a fixed algorithm, not "any reasonable hash": the value seeds the
// card RNG, so changing it silently changes every generated card.
func Hash(s string) uint32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	// Widen before negating: abs(-2^31) does not fit in int32 but fits uint32.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return uint32(v)
}

// Seed derives the card seed for one player in one event.
func Seed(eventID, playerName string) uint32 {
	return Hash(eventID + ":" + playerName)
}
