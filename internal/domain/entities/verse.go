// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"strconv"
)

// Canonical bounds of a verse reference.
const (
	MinSurah = 1
	MaxSurah = 114
	MinAyah  = 1
)

var (
	ErrInvalidReference = errors.New("invalid reference, use surah:ayah (e.g. 2:255)")
	ErrVerseUnavailable = errors.New("could not fetch the verse; check the reference")
)

// VerseReference identifies a single ayah by its surah and ayah numbers.
type VerseReference struct {
	Surah int // surah number (from 1 to 114)
	Ayah  int // ayah number inside the surah (from 1)
}

// Valid reports whether the reference is within the canonical range.
// The per-surah upper bound of the ayah is not known locally.
func (r VerseReference) Valid() bool {
	return r.Surah >= MinSurah && r.Surah <= MaxSurah && r.Ayah >= MinAyah
}

// String renders the reference as "surah:ayah".
func (r VerseReference) String() string {
	return strconv.Itoa(r.Surah) + ":" + strconv.Itoa(r.Ayah)
}

// Verse is a fetched ayah with its translation.
// It is replaced wholesale on every successful fetch and never updated in place.
type Verse struct {
	PrimaryText        string // original Arabic text
	TranslationText    string // English translation
	Reference          string // "surah:ayah"
	ChapterNameLocal   string // surah name in Arabic
	ChapterNameForeign string // surah name transliterated, e.g. "Al-Baqara"
}
