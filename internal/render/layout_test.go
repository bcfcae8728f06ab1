package render

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

func runeMeasure(_ Role, size float64, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * size / 2
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPlanSingleLines(t *testing.T) {
	v := entities.Verse{
		PrimaryText:        "short",
		TranslationText:    "brief",
		Reference:          "112:1",
		ChapterNameForeign: "Al-Ikhlas",
	}
	l := Plan(v, entities.DefaultStyle(), entities.RatioSquare, "", runeMeasure)

	if l.Width != 1080 || l.Height != 1080 {
		t.Fatalf("surface = %dx%d", l.Width, l.Height)
	}
	if len(l.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(l.Lines))
	}

	primary, translation, caption := l.Lines[0], l.Lines[1], l.Lines[2]

	// 540 - 1 line * 32*2.5 / 2
	if !near(primary.MiddleY, 500) || !primary.RTL || !near(primary.Size, 64) {
		t.Errorf("primary = %+v", primary)
	}
	// 500 + 80 + 40
	if !near(translation.MiddleY, 620) || translation.RTL || !near(translation.Size, 36) {
		t.Errorf("translation = %+v", translation)
	}
	// 620 + 18*2.2 + 40
	if !near(caption.MiddleY, 699.6) || !near(caption.Size, 21.6) || caption.Opacity != CaptionOpacity {
		t.Errorf("caption = %+v", caption)
	}
	if caption.Text != "Quran 112:1 - Al-Ikhlas" {
		t.Errorf("caption text = %q", caption.Text)
	}
	for _, ln := range l.Lines {
		if ln.CenterX != 540 {
			t.Errorf("%q centred at %v", ln.Text, ln.CenterX)
		}
	}
}

func TestPlanCentresPrimaryBlock(t *testing.T) {
	// Each word is 6 runes wide; at 64px that is 192px, so three words
	// (20 runes, 640px) fit in 920px and four (27 runes, 864px) fit too,
	// while five (34 runes, 1088px) do not.
	v := entities.Verse{
		PrimaryText:     "aaaaaa bbbbbb cccccc dddddd eeeeee ffffff gggggg hhhhhh",
		TranslationText: "x",
		Reference:       "1:1",
	}
	l := Plan(v, entities.DefaultStyle(), entities.RatioStory, "Source", runeMeasure)

	var primary []Line
	for _, ln := range l.Lines {
		if ln.Role == RolePrimary {
			primary = append(primary, ln)
		}
	}
	if len(primary) != 2 {
		t.Fatalf("primary lines = %d, want 2", len(primary))
	}

	// Block of two lines advanced by 80px centred on 960.
	if !near(primary[0].MiddleY, 880) || !near(primary[1].MiddleY, 960) {
		t.Errorf("primary y = %v, %v", primary[0].MiddleY, primary[1].MiddleY)
	}
	if got := l.Lines[len(l.Lines)-1].Text; got != "Source 1:1 - " {
		t.Errorf("caption = %q", got)
	}
}

func TestCaptionDefaultSource(t *testing.T) {
	v := entities.Verse{Reference: "2:255", ChapterNameForeign: "Al-Baqara"}
	if got := Caption("", v); got != "Quran 2:255 - Al-Baqara" {
		t.Errorf("Caption = %q", got)
	}
}
