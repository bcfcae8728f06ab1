package entities

import (
	"errors"
	"testing"
)

func TestAspectRatioSize(t *testing.T) {
	tests := []struct {
		ratio  string
		width  int
		height int
	}{
		{"1:1", 1080, 1080},
		{"4:5", 1080, 1350},
		{"9:16", 1080, 1920},
	}
	for _, tt := range tests {
		t.Run(tt.ratio, func(t *testing.T) {
			r, err := ParseAspectRatio(tt.ratio)
			if err != nil {
				t.Fatalf("ParseAspectRatio(%q): %v", tt.ratio, err)
			}
			w, h := r.Size()
			if w != tt.width || h != tt.height {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestParseAspectRatioRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "16:9", "1:1 ", "square"} {
		if _, err := ParseAspectRatio(s); !errors.Is(err, ErrUnknownAspectRatio) {
			t.Errorf("ParseAspectRatio(%q) err = %v, want ErrUnknownAspectRatio", s, err)
		}
	}
}

func TestAspectRatioUnknownFallsBackToDefault(t *testing.T) {
	w, h := AspectRatio("bogus").Size()
	if w != 1080 || h != 1080 {
		t.Errorf("Size() = %dx%d, want default 1080x1080", w, h)
	}
}
