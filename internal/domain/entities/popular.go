package entities

import "time"

// PopularVerse is a well-known verse offered as a shortcut.
type PopularVerse struct {
	Reference VerseReference
	Name      string
}

var popularVerses = []PopularVerse{
	{Reference: VerseReference{Surah: 2, Ayah: 255}, Name: "Ayat al-Kursi"},
	{Reference: VerseReference{Surah: 1, Ayah: 1}, Name: "Al-Fatiha"},
	{Reference: VerseReference{Surah: 112, Ayah: 1}, Name: "Al-Ikhlas"},
	{Reference: VerseReference{Surah: 2, Ayah: 286}, Name: "Last verse of Al-Baqarah"},
	{Reference: VerseReference{Surah: 3, Ayah: 26}, Name: "Dua from Ali Imran"},
}

// PopularVerses returns the shortcut list.
func PopularVerses() []PopularVerse {
	out := make([]PopularVerse, len(popularVerses))
	copy(out, popularVerses)
	return out
}

// VerseOfTheDay rotates through the popular verses by day of year (UTC).
func VerseOfTheDay(t time.Time) PopularVerse {
	day := t.UTC().YearDay()
	return popularVerses[(day-1)%len(popularVerses)]
}
