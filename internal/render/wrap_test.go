package render

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// monospace measures every rune as 10px.
func monospace(s string) float64 {
	return float64(utf8.RuneCountInString(s) * 10)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"empty", "", 100, nil},
		{"blank", "   ", 100, nil},
		{"single word", "hello", 100, []string{"hello"}},
		{"fits", "in the name", 200, []string{"in the name"}},
		{"breaks", "in the name of god", 100, []string{"in the", "name of", "god"}},
		{"exact width closes the line", "abcd efgh", 90, []string{"abcd", "efgh"}},
		{"overlong word alone", "a supercalifragilistic b", 100, []string{"a", "supercalifragilistic", "b"}},
		{"collapses whitespace", "a  b\tc", 1000, []string{"a b c"}},
		{"any unicode space splits", "a\nb\u00a0c", 1000, []string{"a b c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, monospace)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapRespectsBudget(t *testing.T) {
	text := "Allah there is no deity except Him the Ever Living the Sustainer of existence " +
		"neither drowsiness overtakes Him nor sleep to Him belongs whatever is in the heavens"
	for _, width := range []float64{80, 120, 200, 333, 500} {
		for _, line := range Wrap(text, width, monospace) {
			if len(strings.Fields(line)) > 1 && monospace(line) > width {
				t.Errorf("width %v: line %q measures %v", width, line, monospace(line))
			}
		}
	}
}

func TestWrapIdempotent(t *testing.T) {
	text := "Say He is Allah the One Allah the Eternal Refuge He neither begets nor is born " +
		"nor is there to Him any equivalent"
	for _, width := range []float64{60, 150, 260} {
		for _, line := range Wrap(text, width, monospace) {
			again := Wrap(line, width, monospace)
			if len(again) != 1 || again[0] != line {
				t.Errorf("width %v: rewrap of %q = %q", width, line, again)
			}
		}
	}
}
