package render

import "strings"

// Wrap breaks text into lines greedily. A word joins the current line only
// while the measured width of the joined line stays under maxWidth; the
// first word of a line is always accepted, so an overlong word sits alone
// on its line and is never split.
//
// Words are split on any Unicode whitespace, and runs of it collapse to one
// space, so line breaks and tabs in the source text do not survive.
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 4)
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) < maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}

	return append(lines, line)
}
