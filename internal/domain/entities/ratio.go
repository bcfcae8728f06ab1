package entities

import "errors"

var ErrUnknownAspectRatio = errors.New("unknown aspect ratio")

// AspectRatio is one of the supported export formats.
type AspectRatio string

const (
	RatioSquare   AspectRatio = "1:1"
	RatioPortrait AspectRatio = "4:5"
	RatioStory    AspectRatio = "9:16"
)

// DefaultAspectRatio is used for new sessions.
const DefaultAspectRatio = RatioSquare

// AspectRatioSpec is the pixel size and display label of a ratio.
type AspectRatioSpec struct {
	Width  int
	Height int
	Label  string
}

var aspectRatios = map[AspectRatio]AspectRatioSpec{
	RatioSquare:   {Width: 1080, Height: 1080, Label: "Instagram Post"},
	RatioPortrait: {Width: 1080, Height: 1350, Label: "Instagram Portrait"},
	RatioStory:    {Width: 1080, Height: 1920, Label: "Story"},
}

// AspectRatios lists the supported ratios in display order.
func AspectRatios() []AspectRatio {
	return []AspectRatio{RatioSquare, RatioPortrait, RatioStory}
}

// ParseAspectRatio validates a ratio string such as "4:5".
func ParseAspectRatio(s string) (AspectRatio, error) {
	r := AspectRatio(s)
	if _, ok := aspectRatios[r]; !ok {
		return "", ErrUnknownAspectRatio
	}
	return r, nil
}

// Spec returns the size and label of the ratio.
// Unknown ratios fall back to the default one.
func (r AspectRatio) Spec() AspectRatioSpec {
	if spec, ok := aspectRatios[r]; ok {
		return spec
	}
	return aspectRatios[DefaultAspectRatio]
}

// Size returns the pixel dimensions of the ratio.
func (r AspectRatio) Size() (width, height int) {
	spec := r.Spec()
	return spec.Width, spec.Height
}
