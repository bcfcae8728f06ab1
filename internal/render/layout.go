package render

import (
	"fmt"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// Layout constants, in pixels or multiples of the configured font size.
const (
	Padding          = 80
	BlockGap         = 40
	PrimaryScale     = 2.0
	PrimaryAdvance   = 2.5
	TranslationScale = 2.0
	TranslationLead  = 2.2
	CaptionScale     = 1.2
	CaptionOpacity   = 0.8

	DefaultCaptionSource = "Quran"
)

type Role int

const (
	RolePrimary Role = iota
	RoleTranslation
	RoleCaption
)

// Line is one line of text placed on the card. CenterX and MiddleY locate
// the centre of the line's glyph box.
type Line struct {
	Role    Role
	Text    string
	CenterX float64
	MiddleY float64
	Size    float64 // pixel size of the face
	Opacity float64
	RTL     bool
}

type Layout struct {
	Width  int
	Height int
	Lines  []Line
}

// Measure returns the advance of s for a line of the given role at the
// given pixel size.
type Measure func(role Role, size float64, s string) float64

// Caption is the reference line under the translation.
func Caption(source string, v entities.Verse) string {
	if source == "" {
		source = DefaultCaptionSource
	}
	return fmt.Sprintf("%s %s - %s", source, v.Reference, v.ChapterNameForeign)
}

// Plan lays out v on a surface of the ratio's size. The primary block is
// centred on the vertical midpoint; the translation and the caption follow
// it, each after a fixed gap.
func Plan(v entities.Verse, style entities.StyleSettings, ratio entities.AspectRatio, source string, measure Measure) Layout {
	w, h := ratio.Size()
	l := Layout{Width: w, Height: h}

	centerX := float64(w) / 2
	maxWidth := float64(w - 2*Padding)

	primarySize := float64(style.PrimaryFontSize) * PrimaryScale
	primaryLines := Wrap(v.PrimaryText, maxWidth, func(s string) float64 {
		return measure(RolePrimary, primarySize, s)
	})

	primaryAdvance := float64(style.PrimaryFontSize) * PrimaryAdvance
	y := float64(h)/2 - float64(len(primaryLines))*primaryAdvance/2
	for _, text := range primaryLines {
		l.Lines = append(l.Lines, Line{
			Role:    RolePrimary,
			Text:    text,
			CenterX: centerX,
			MiddleY: y,
			Size:    primarySize,
			Opacity: 1,
			RTL:     true,
		})
		y += primaryAdvance
	}

	y += BlockGap
	translationSize := float64(style.TranslationFontSize) * TranslationScale
	translationLines := Wrap(v.TranslationText, maxWidth, func(s string) float64 {
		return measure(RoleTranslation, translationSize, s)
	})
	for _, text := range translationLines {
		l.Lines = append(l.Lines, Line{
			Role:    RoleTranslation,
			Text:    text,
			CenterX: centerX,
			MiddleY: y,
			Size:    translationSize,
			Opacity: 1,
		})
		y += float64(style.TranslationFontSize) * TranslationLead
	}

	y += BlockGap
	l.Lines = append(l.Lines, Line{
		Role:    RoleCaption,
		Text:    Caption(source, v),
		CenterX: centerX,
		MiddleY: y,
		Size:    float64(style.TranslationFontSize) * CaptionScale,
		Opacity: CaptionOpacity,
	})

	return l
}
