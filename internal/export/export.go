// Package export serializes rendered cards.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

const JPEGQuality = 92

// FileName is the download name of a card: quran-<reference>.png, or
// quran-verse.png when nothing is loaded.
func FileName(v *entities.Verse) string {
	ref := "verse"
	if v != nil && v.Reference != "" {
		ref = v.Reference
	}
	return "quran-" + ref + ".png"
}

// FormatFromPath picks the encoding by file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", "":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Encode writes img to w. An empty format means PNG.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG, "":
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		return enc.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
