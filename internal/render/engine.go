// Package render draws verse cards onto fixed-size bitmaps.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// OverlayAlpha is the opacity of the background color drawn over a
// background image.
const OverlayAlpha = 0x80

// Engine renders cards. It keeps no state between calls and is safe for
// concurrent use.
type Engine struct {
	fonts  Fonts
	source string
}

// NewEngine creates an engine. An empty source uses DefaultCaptionSource.
func NewEngine(fonts Fonts, source string) *Engine {
	if source == "" {
		source = DefaultCaptionSource
	}
	return &Engine{fonts: fonts, source: source}
}

type faceKey struct {
	role Role
	size float64
}

// faceSet creates faces on first use for one render call.
type faceSet struct {
	fonts Fonts
	faces map[faceKey]Face
	err   error
}

func (fs *faceSet) face(role Role, size float64) Face {
	key := faceKey{role, size}
	if f, ok := fs.faces[key]; ok {
		return f
	}

	src := fs.fonts.Translation
	if role == RolePrimary {
		src = fs.fonts.Primary
	}
	f, err := src.Face(size)
	if err != nil {
		if fs.err == nil {
			fs.err = fmt.Errorf("face %.1fpx: %w", size, err)
		}
		return nil
	}
	fs.faces[key] = f
	return f
}

func (fs *faceSet) measure(role Role, size float64, s string) float64 {
	f := fs.face(role, size)
	if f == nil {
		return 0
	}
	return f.Advance(s)
}

// Render draws v with style on a surface of the ratio's size. bg, when not
// nil, is stretched over the whole surface and tinted with the background
// color; otherwise the surface is filled with the background color.
func (e *Engine) Render(v *entities.Verse, style entities.StyleSettings, ratio entities.AspectRatio, bg image.Image) (*image.RGBA, error) {
	if v == nil {
		return nil, entities.ErrNoVerse
	}

	faces := &faceSet{fonts: e.fonts, faces: make(map[faceKey]Face)}
	layout := Plan(*v, style, ratio, e.source, faces.measure)
	if faces.err != nil {
		return nil, faces.err
	}

	img := image.NewRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	paintBackground(img, style.BackgroundColor, bg)

	for _, ln := range layout.Lines {
		f := faces.face(ln.Role, ln.Size)
		if f == nil {
			return nil, faces.err
		}
		drawLine(img, f, ln, style.TextColor)
	}

	return img, nil
}

func paintBackground(img *image.RGBA, c entities.Color, bg image.Image) {
	bounds := img.Bounds()
	if bg == nil || bg.Bounds().Empty() {
		draw.Draw(img, bounds, image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
		return
	}

	xdraw.CatmullRom.Scale(img, bounds, bg, bg.Bounds(), xdraw.Src, nil)

	overlay := c.NRGBA()
	overlay.A = OverlayAlpha
	draw.Draw(img, bounds, image.NewUniform(overlay), image.Point{}, draw.Over)
}

// drawLine centres the line horizontally on CenterX and places the glyph
// box middle on MiddleY.
func drawLine(img draw.Image, f Face, ln Line, c entities.Color) {
	ascent, descent := f.Metrics()
	x := ln.CenterX - f.Advance(ln.Text)/2
	baseline := ln.MiddleY + (ascent-descent)/2

	var col color.Color = c.NRGBA()
	if ln.Opacity < 1 {
		col = c.WithOpacity(ln.Opacity).NRGBA()
	}
	f.Draw(img, ln.Text, x, baseline, col)
}
