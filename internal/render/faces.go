package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"runtime"
	"sync"
	"unicode"

	"github.com/go-fonts/dejavu/dejavusans"
	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	ErrEmptyFont      = errors.New("empty font data")
	ErrNoArabicGlyphs = errors.New("font has no Arabic glyphs")
)

// Face measures and draws single lines of text at one pixel size.
// Faces are not safe for concurrent use; FaceSource hands out a fresh one per call.
type Face interface {
	// Advance is the horizontal extent of s in pixels.
	Advance(s string) float64
	// Metrics returns ascent and descent in pixels, both positive.
	Metrics() (ascent, descent float64)
	// Draw paints s with its left edge at x and its baseline at y.
	Draw(dst draw.Image, s string, x, y float64, c color.Color)
}

type FaceSource interface {
	Face(size float64) (Face, error)
}

// FontConfig points at TTF/OTF files. Empty paths use the bundled fonts,
// or for the primary face an Arabic system font when SystemFonts is set.
type FontConfig struct {
	PrimaryPath     string
	TranslationPath string
	SystemFonts     bool
}

// Fonts holds the two scripts' font sources.
type Fonts struct {
	Primary     FaceSource
	Translation FaceSource
	PrimaryName string // where the primary font came from, for logs
}

// LoadFonts reads the configured fonts. The primary face is shaped right to
// left with HarfBuzz; the translation face is a plain TrueType face.
//
// The primary font is the configured file, else the first Arabic system font
// found, else the bundled DejaVu Sans. A configured font without Arabic
// glyphs is an error.
func LoadFonts(cfg FontConfig) (Fonts, error) {
	var f Fonts

	switch {
	case cfg.PrimaryPath != "":
		p, err := loadShapedFile(cfg.PrimaryPath)
		if err != nil {
			return f, fmt.Errorf("load primary font: %w", err)
		}
		if !p.CoversArabic() {
			return f, fmt.Errorf("%w: %s", ErrNoArabicGlyphs, cfg.PrimaryPath)
		}
		f.Primary, f.PrimaryName = p, cfg.PrimaryPath

	case cfg.SystemFonts:
		if p, path := findArabicFont(); p != nil {
			f.Primary, f.PrimaryName = p, path
		}
	}

	if f.Primary == nil {
		p, err := NewShapedSource(dejavusans.TTF, di.DirectionRTL)
		if err != nil {
			return f, fmt.Errorf("load bundled primary font: %w", err)
		}
		f.Primary, f.PrimaryName = p, "DejaVu Sans (bundled)"
	}

	translation := goregular.TTF
	if cfg.TranslationPath != "" {
		b, err := os.ReadFile(cfg.TranslationPath)
		if err != nil {
			return f, fmt.Errorf("read translation font: %w", err)
		}
		translation = b
	}
	t, err := NewTrueTypeSource(translation)
	if err != nil {
		return f, fmt.Errorf("load translation font: %w", err)
	}
	f.Translation = t

	return f, nil
}

func loadShapedFile(path string) (*ShapedSource, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewShapedSource(b, di.DirectionRTL)
}

// arabicFontPaths lists Arabic fonts commonly installed on each system.
func arabicFontPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			"C:\\Windows\\Fonts\\Amiri-Regular.ttf",
			"C:\\Windows\\Fonts\\trado.ttf",
			"C:\\Windows\\Fonts\\arial.ttf",
		}
	case "darwin":
		return []string{
			"/Library/Fonts/Amiri-Regular.ttf",
			"/Library/Fonts/NotoNaskhArabic-Regular.ttf",
		}
	default: // Linux
		return []string{
			"/usr/share/fonts/truetype/amiri/amiri-regular.ttf",
			"/usr/share/fonts/TTF/Amiri-Regular.ttf",
			"/usr/share/fonts/amiri/amiri-regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoNaskhArabic-Regular.ttf",
			"/usr/share/fonts/noto/NotoNaskhArabic-Regular.ttf",
			"/usr/share/fonts/google-noto/NotoNaskhArabic-Regular.ttf",
			"/usr/share/fonts/truetype/scheherazade/ScheherazadeNew-Regular.ttf",
		}
	}
}

// findArabicFont returns the first readable system font with Arabic glyphs.
func findArabicFont() (*ShapedSource, string) {
	for _, path := range arabicFontPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		p, err := loadShapedFile(path)
		if err != nil || !p.CoversArabic() {
			continue
		}
		return p, path
	}
	return nil, ""
}

// ---- TrueType ----

type TrueTypeSource struct {
	font *truetype.Font
}

func NewTrueTypeSource(ttf []byte) (*TrueTypeSource, error) {
	if len(ttf) == 0 {
		return nil, ErrEmptyFont
	}
	ft, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return &TrueTypeSource{font: ft}, nil
}

func (s *TrueTypeSource) Face(size float64) (Face, error) {
	// DPI 72 makes one point one pixel.
	face := truetype.NewFace(s.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	return &trueTypeFace{font: s.font, face: face, size: size}, nil
}

type trueTypeFace struct {
	font *truetype.Font
	face font.Face
	size float64
}

func (f *trueTypeFace) Advance(s string) float64 {
	if s == "" {
		return 0
	}
	return fixedToFloat(font.MeasureString(f.face, s))
}

func (f *trueTypeFace) Metrics() (float64, float64) {
	m := f.face.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

func (f *trueTypeFace) Draw(dst draw.Image, s string, x, y float64, c color.Color) {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f.font)
	ctx.SetFontSize(f.size)
	ctx.SetHinting(font.HintingNone)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))
	_, _ = ctx.DrawString(s, fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)})
}

// ---- Shaped (HarfBuzz + sfnt outlines) ----

// ShapedSource shapes runs with go-text/typesetting and rasterizes glyph
// outlines taken from the same font through golang.org/x/image.
type ShapedSource struct {
	shapeFont *gtfont.Font
	outlines  *sfnt.Font
	direction di.Direction
	pool      sync.Pool
}

func NewShapedSource(data []byte, dir di.Direction) (*ShapedSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse for shaping: %w", err)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse outlines: %w", err)
	}

	return &ShapedSource{
		shapeFont: face.Font,
		outlines:  outlines,
		direction: dir,
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

func (s *ShapedSource) Face(size float64) (Face, error) {
	var buf sfnt.Buffer
	ppem := floatToFixed(size)
	m, err := s.outlines.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("font metrics: %w", err)
	}

	return &shapedFace{
		src:     s,
		face:    gtfont.NewFace(s.shapeFont),
		size:    size,
		ppem:    ppem,
		ascent:  fixedToFloat(m.Ascent),
		descent: fixedToFloat(m.Descent),
	}, nil
}

// CoversArabic reports whether the font maps the basic Arabic letters.
func (s *ShapedSource) CoversArabic() bool {
	for _, r := range "\u0627\u0628\u0644\u0645\u0647" {
		if !s.hasGlyph(r) {
			return false
		}
	}
	return true
}

func (s *ShapedSource) hasGlyph(r rune) bool {
	_, ok := s.shapeFont.NominalGlyph(r)
	return ok
}

// quranicFallbacks maps Quranic orthography to the common Arabic letters and
// marks, for fonts that only cover the basic Arabic block.
var quranicFallbacks = map[rune]rune{
	'\u0671': '\u0627', // alef wasla
	'\u0672': '\u0623', // alef with wavy hamza above
	'\u0673': '\u0625', // alef with wavy hamza below
	'\u0675': '\u0627', // high hamza alef
	'\u06E1': '\u0652', // small high dotless head of khah, used as sukun
}

// cover replaces runes the font cannot map with their fallback. Unmapped
// marks, modifier letters and symbols (Quranic pause and annotation signs)
// are dropped; anything else is kept and draws as the missing glyph.
func (s *ShapedSource) cover(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if r == ' ' || s.hasGlyph(r) {
			out = append(out, r)
			continue
		}
		if alt, ok := quranicFallbacks[r]; ok && s.hasGlyph(alt) {
			out = append(out, alt)
			continue
		}
		if unicode.In(r, unicode.Mn, unicode.Me, unicode.Lm, unicode.So) {
			continue
		}
		out = append(out, r)
	}
	return out
}

type shapedFace struct {
	src     *ShapedSource
	face    *gtfont.Face
	buf     sfnt.Buffer
	size    float64
	ppem    fixed.Int26_6
	ascent  float64
	descent float64
}

func (f *shapedFace) shape(s string) []shaping.Glyph {
	runes := f.src.cover([]rune(s))
	if len(runes) == 0 {
		return nil
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: f.src.direction,
		Face:      f.face,
		Size:      f.ppem,
		Script:    detectScript(runes),
		Language:  language.NewLanguage("ar"),
	}

	hb := f.src.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	f.src.pool.Put(hb)

	return out.Glyphs
}

func (f *shapedFace) Advance(s string) float64 {
	var w fixed.Int26_6
	for _, g := range f.shape(s) {
		w += g.Advance
	}
	return fixedToFloat(w)
}

func (f *shapedFace) Metrics() (float64, float64) {
	return f.ascent, f.descent
}

// Draw rasterizes the shaped line into an alpha mask sized to the line box
// and composites the text color through it. Glyphs come out of the shaper in
// visual order, so the pen always moves left to right.
func (f *shapedFace) Draw(dst draw.Image, s string, x, y float64, c color.Color) {
	glyphs := f.shape(s)
	if len(glyphs) == 0 {
		return
	}

	var width fixed.Int26_6
	for _, g := range glyphs {
		width += g.Advance
	}

	const pad = 2
	top := int(math.Floor(y - f.ascent - pad))
	left := int(math.Floor(x - pad))
	w := int(math.Ceil(fixedToFloat(width))) + 2*pad
	h := int(math.Ceil(f.ascent+f.descent)) + 2*pad
	if w <= 0 || h <= 0 {
		return
	}

	// Baseline position inside the mask.
	ox := float32(x) - float32(left)
	oy := float32(y) - float32(top)

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src

	var pen float32
	for _, g := range glyphs {
		segs, err := f.src.outlines.LoadGlyph(&f.buf, sfnt.GlyphIndex(g.GlyphID), f.ppem, nil)
		if err == nil {
			gx := ox + pen + float32(fixedToFloat(g.XOffset))
			gy := oy - float32(fixedToFloat(g.YOffset))
			addSegments(r, segs, gx, gy)
		}
		pen += float32(fixedToFloat(g.Advance))
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	rect := image.Rect(left, top, left+w, top+h)
	draw.DrawMask(dst, rect, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func addSegments(r *vector.Rasterizer, segs sfnt.Segments, dx, dy float32) {
	pt := func(p fixed.Point26_6) (float32, float32) {
		return dx + float32(p.X)/64, dy + float32(p.Y)/64
	}

	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			r.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if open {
		r.ClosePath()
	}
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Arabic
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
