package export

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		verse *entities.Verse
		want  string
	}{
		{nil, "quran-verse.png"},
		{&entities.Verse{}, "quran-verse.png"},
		{&entities.Verse{Reference: "2:255"}, "quran-2:255.png"},
	}
	for _, tt := range tests {
		if got := FileName(tt.verse); got != tt.want {
			t.Errorf("FileName(%+v) = %q, want %q", tt.verse, got, tt.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"card.png", FormatPNG, false},
		{"CARD.PNG", FormatPNG, false},
		{"card", FormatPNG, false},
		{"card.jpg", FormatJPEG, false},
		{"out/card.jpeg", FormatJPEG, false},
		{"card.gif", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) err = %v", tt.path, err)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) err = %v, want ErrUnsupportedFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		t.Fatalf("png: %v", err)
	}
	if cfg, err := png.DecodeConfig(&buf); err != nil || cfg.Width != 8 || cfg.Height != 4 {
		t.Errorf("png config = %+v, %v", cfg, err)
	}

	buf.Reset()
	if err := Encode(&buf, img, FormatJPEG); err != nil {
		t.Fatalf("jpeg: %v", err)
	}
	if _, err := jpeg.DecodeConfig(&buf); err != nil {
		t.Errorf("jpeg: %v", err)
	}

	if err := Encode(&buf, img, Format("bmp")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("bmp err = %v", err)
	}
}
