package entities

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	ErrInvalidColor       = errors.New("invalid color, use #rrggbb")
	ErrFontSizeOutOfRange = errors.New("font size out of range")
	ErrUnknownPreset      = errors.New("unknown preset")
)

// Font size limits enforced by the style controls.
const (
	MinPrimaryFontSize      = 24
	MaxPrimaryFontSize      = 48
	PrimaryFontSizeStep     = 2
	MinTranslationFontSize  = 14
	MaxTranslationFontSize  = 28
	TranslationFontSizeStep = 1
)

// Color is an sRGB color with straight (non-premultiplied) alpha.
type Color struct {
	R, G, B, A uint8
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustParseColor is ParseColor for package-level constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// NRGBA converts the color for use with image/draw.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// WithOpacity scales the alpha channel by f (0..1).
func (c Color) WithOpacity(f float64) Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	c.A = uint8(float64(c.A)*f + 0.5)
	return c
}

// ImageReference points at a background image: an http(s) URL,
// a data: URL or a local file path.
type ImageReference struct {
	URL string
}

// StyleSettings holds typography and background options of a card.
type StyleSettings struct {
	PrimaryFontSize     int             // Arabic text size, px before scaling
	TranslationFontSize int             // translation text size, px before scaling
	TextColor           Color           // color of all text
	BackgroundColor     Color           // solid fill or overlay color
	BackgroundImage     *ImageReference // nullable
}

// DefaultStyle returns the settings of a new session.
func DefaultStyle() StyleSettings {
	p, _ := PresetByName(PresetClassic)
	return p.Apply(StyleSettings{})
}

// WithPrimaryFontSize returns a copy with the Arabic font size changed.
func (s StyleSettings) WithPrimaryFontSize(size int) (StyleSettings, error) {
	if size < MinPrimaryFontSize || size > MaxPrimaryFontSize || (size-MinPrimaryFontSize)%PrimaryFontSizeStep != 0 {
		return s, fmt.Errorf("%w: arabic size must be %d..%d in steps of %d",
			ErrFontSizeOutOfRange, MinPrimaryFontSize, MaxPrimaryFontSize, PrimaryFontSizeStep)
	}
	s.PrimaryFontSize = size
	return s, nil
}

// WithTranslationFontSize returns a copy with the translation font size changed.
func (s StyleSettings) WithTranslationFontSize(size int) (StyleSettings, error) {
	if size < MinTranslationFontSize || size > MaxTranslationFontSize {
		return s, fmt.Errorf("%w: translation size must be %d..%d",
			ErrFontSizeOutOfRange, MinTranslationFontSize, MaxTranslationFontSize)
	}
	s.TranslationFontSize = size
	return s, nil
}

// WithTextColor returns a copy with the text color changed.
func (s StyleSettings) WithTextColor(hex string) (StyleSettings, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return s, err
	}
	s.TextColor = c
	return s, nil
}

// WithBackgroundColor returns a copy with the background color changed.
func (s StyleSettings) WithBackgroundColor(hex string) (StyleSettings, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return s, err
	}
	s.BackgroundColor = c
	return s, nil
}

// WithBackgroundImage returns a copy with the background image set, or cleared when ref is nil.
func (s StyleSettings) WithBackgroundImage(ref *ImageReference) StyleSettings {
	if ref == nil || strings.TrimSpace(ref.URL) == "" {
		s.BackgroundImage = nil
		return s
	}
	cp := *ref
	s.BackgroundImage = &cp
	return s
}

// Preset names.
const (
	PresetClassic = "classic"
	PresetGolden  = "golden"
	PresetEmerald = "emerald"
)

// Preset is a named theme. Applying it replaces sizes and colors
// and keeps the background image.
type Preset struct {
	Name                string
	Title               string
	PrimaryFontSize     int
	TranslationFontSize int
	TextColor           Color
	BackgroundColor     Color
}

var presets = []Preset{
	{
		Name:                PresetClassic,
		Title:               "Classic",
		PrimaryFontSize:     32,
		TranslationFontSize: 18,
		TextColor:           MustParseColor("#1a365d"),
		BackgroundColor:     MustParseColor("#f7fafc"),
	},
	{
		Name:                PresetGolden,
		Title:               "Golden",
		PrimaryFontSize:     36,
		TranslationFontSize: 20,
		TextColor:           MustParseColor("#744210"),
		BackgroundColor:     MustParseColor("#fffbeb"),
	},
	{
		Name:                PresetEmerald,
		Title:               "Emerald",
		PrimaryFontSize:     34,
		TranslationFontSize: 19,
		TextColor:           MustParseColor("#064e3b"),
		BackgroundColor:     MustParseColor("#f0fdf4"),
	},
}

// Presets returns all presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByName finds a preset, case-insensitively.
func PresetByName(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Apply merges the preset into s.
func (p Preset) Apply(s StyleSettings) StyleSettings {
	s.PrimaryFontSize = p.PrimaryFontSize
	s.TranslationFontSize = p.TranslationFontSize
	s.TextColor = p.TextColor
	s.BackgroundColor = p.BackgroundColor
	return s
}
