package entities

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#1a365d", Color{0x1a, 0x36, 0x5d, 0xff}},
		{"1a365d", Color{0x1a, 0x36, 0x5d, 0xff}},
		{"#fff", Color{0xff, 0xff, 0xff, 0xff}},
		{"#00000080", Color{0, 0, 0, 0x80}},
		{" #F7FAFC ", Color{0xf7, 0xfa, 0xfc, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#gggggg", "red"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestColorHex(t *testing.T) {
	if got := MustParseColor("#1A365D").Hex(); got != "#1a365d" {
		t.Errorf("Hex() = %q", got)
	}
	if got := MustParseColor("#1a365d80").Hex(); got != "#1a365d80" {
		t.Errorf("Hex() = %q", got)
	}
}

func TestColorWithOpacity(t *testing.T) {
	c := MustParseColor("#102030").WithOpacity(0.8)
	if c.A != 204 {
		t.Errorf("alpha = %d, want 204", c.A)
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.PrimaryFontSize != 32 || s.TranslationFontSize != 18 {
		t.Errorf("sizes = %d/%d, want 32/18", s.PrimaryFontSize, s.TranslationFontSize)
	}
	if s.TextColor.Hex() != "#1a365d" || s.BackgroundColor.Hex() != "#f7fafc" {
		t.Errorf("colors = %s/%s", s.TextColor.Hex(), s.BackgroundColor.Hex())
	}
	if s.BackgroundImage != nil {
		t.Errorf("expected no background image")
	}
}

func TestStyleFontSizeRanges(t *testing.T) {
	s := DefaultStyle()

	if _, err := s.WithPrimaryFontSize(48); err != nil {
		t.Errorf("48: %v", err)
	}
	for _, size := range []int{22, 25, 50} {
		if _, err := s.WithPrimaryFontSize(size); !errors.Is(err, ErrFontSizeOutOfRange) {
			t.Errorf("WithPrimaryFontSize(%d) err = %v", size, err)
		}
	}

	if _, err := s.WithTranslationFontSize(15); err != nil {
		t.Errorf("15: %v", err)
	}
	for _, size := range []int{13, 29} {
		if _, err := s.WithTranslationFontSize(size); !errors.Is(err, ErrFontSizeOutOfRange) {
			t.Errorf("WithTranslationFontSize(%d) err = %v", size, err)
		}
	}
}

func TestStyleUpdatesDoNotMutateReceiver(t *testing.T) {
	s := DefaultStyle()
	next, err := s.WithTextColor("#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	if s.TextColor.Hex() != "#1a365d" {
		t.Errorf("receiver mutated: %s", s.TextColor.Hex())
	}
	if next.TextColor.Hex() != "#ffffff" {
		t.Errorf("next color = %s", next.TextColor.Hex())
	}
}

func TestStyleBackgroundImageToggle(t *testing.T) {
	s := DefaultStyle().WithBackgroundImage(&ImageReference{URL: "https://example.com/a.jpg"})
	if s.BackgroundImage == nil || s.BackgroundImage.URL != "https://example.com/a.jpg" {
		t.Fatalf("background image not set: %+v", s.BackgroundImage)
	}
	s = s.WithBackgroundImage(nil)
	if s.BackgroundImage != nil {
		t.Errorf("background image not cleared")
	}
	s = s.WithBackgroundImage(&ImageReference{URL: "  "})
	if s.BackgroundImage != nil {
		t.Errorf("blank reference should clear the image")
	}
}

func TestPresetApplyKeepsBackgroundImage(t *testing.T) {
	s := DefaultStyle().WithBackgroundImage(&ImageReference{URL: "file.png"})
	p, err := PresetByName("Golden")
	if err != nil {
		t.Fatal(err)
	}
	got := p.Apply(s)
	if got.PrimaryFontSize != 36 || got.TranslationFontSize != 20 {
		t.Errorf("sizes = %d/%d", got.PrimaryFontSize, got.TranslationFontSize)
	}
	if got.TextColor.Hex() != "#744210" || got.BackgroundColor.Hex() != "#fffbeb" {
		t.Errorf("colors = %s/%s", got.TextColor.Hex(), got.BackgroundColor.Hex())
	}
	if got.BackgroundImage == nil {
		t.Errorf("preset dropped the background image")
	}
}

func TestPresetByNameUnknown(t *testing.T) {
	if _, err := PresetByName("neon"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestPresetsRespectSizeRanges(t *testing.T) {
	for _, p := range Presets() {
		s := p.Apply(StyleSettings{})
		if _, err := s.WithPrimaryFontSize(p.PrimaryFontSize); err != nil {
			t.Errorf("%s primary: %v", p.Name, err)
		}
		if _, err := s.WithTranslationFontSize(p.TranslationFontSize); err != nil {
			t.Errorf("%s translation: %v", p.Name, err)
		}
	}
}
