// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// Error messages.
const (
	msgInvalidReference   = "Please use the format surah:ayah, for example 2:255."
	msgVerseUnavailable   = "Could not fetch the verse. Please check the reference and try again."
	msgFetchInProgress    = "Still loading the previous verse, please wait."
	msgSearchInProgress   = "A photo search is already running, please wait."
	msgNoVerse            = "Send a reference like 2:255 first."
	msgInvalidColor       = "Invalid color. Use a hex value like #1a365d."
	msgFontSizeOutOfRange = "Arabic size must be 24 to 48 in steps of 2, English size 14 to 28."
	msgUnknownPreset      = "Unknown theme. Choose one of: classic, golden, emerald."
	msgUnknownRatio       = "Unknown ratio. Choose 1:1, 4:5 or 9:16."
	msgPhotoNotFound      = "That photo is no longer in the results. Search again with /search."
	msgNoMorePhotos       = "No more photos for this search."
	msgNoPhotos           = "No photos found."
	msgInternalError      = "Something went wrong. Please try again later."
	msgUploadFailed       = "Could not read that image. The card keeps its current background."
	msgNotAnImage         = "Only image files can be used as a background."
)

// Usage messages.
const (
	msgUseArabic     = "Use: /arabic 36 (24 to 48, even numbers)."
	msgUseEnglish    = "Use: /english 20 (14 to 28)."
	msgUseColor      = "Use: /color #1a365d"
	msgUseBackground = "Use: /background #f7fafc"
	msgUseSearch     = "Use: /search mosque"
)

const (
	msgWelcome = "Assalamu alaikum!\n\n" +
		"Send a verse reference like 2:255 and I will turn it into an image card " +
		"for Instagram posts and stories.\n\n" + msgHelpBody

	msgHelpBody = "Commands:\n" +
		"/popular - well-known verses\n" +
		"/ratio - card size (1:1, 4:5, 9:16)\n" +
		"/theme - Classic, Golden or Emerald\n" +
		"/arabic N - Arabic font size\n" +
		"/english N - translation font size\n" +
		"/color #hex - text color\n" +
		"/background #hex - background color\n" +
		"/search query - find a background photo\n" +
		"/more - more photos\n" +
		"/nobg - remove the background photo\n" +
		"/style - current settings\n" +
		"/export - download the PNG\n" +
		"/daily - verse of the day on/off\n\n" +
		"You can also send a photo to use it as the background."

	msgUnknownCommand = "Unknown command.\n\n" + msgHelpBody

	msgChooseRatio   = "Choose the card size:"
	msgChooseTheme   = "Choose a theme:"
	msgChoosePopular = "Popular verses:"
	msgBackgroundOff = "Background photo removed."
	msgDailyOn       = "You will get the verse of the day every morning."
	msgDailyOff      = "Daily verse turned off."
)

// linkEscaper escapes a URL inside a MarkdownV2 inline link.
var linkEscaper = strings.NewReplacer(`\`, `\\`, `)`, `\)`)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func formatBool(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// formatPreviewCaption is the caption of the preview photo.
func formatPreviewCaption(s entities.Session) string {
	if s.Verse == nil {
		return ""
	}
	spec := s.Ratio.Spec()
	return fmt.Sprintf("%s %s (%s)\n%s %dx%d",
		s.Verse.ChapterNameForeign, s.Verse.Reference, s.Verse.ChapterNameLocal,
		spec.Label, spec.Width, spec.Height,
	)
}

// formatStyle renders the /style summary in MarkdownV2.
func formatStyle(s entities.Session) string {
	st := s.Style
	spec := s.Ratio.Spec()

	verse := "none"
	if s.Verse != nil {
		verse = s.Verse.Reference + " " + s.Verse.ChapterNameForeign
	}
	bg := "none"
	if st.BackgroundImage != nil {
		bg = "photo"
	}

	lines := []string{
		bold("Card settings"),
		"",
		md(fmt.Sprintf("Verse: %s", verse)),
		md(fmt.Sprintf("Size: %s %s (%dx%d)", s.Ratio, spec.Label, spec.Width, spec.Height)),
		md(fmt.Sprintf("Arabic font: %dpx", st.PrimaryFontSize)),
		md(fmt.Sprintf("English font: %dpx", st.TranslationFontSize)),
		md(fmt.Sprintf("Text color: %s", st.TextColor.Hex())),
		md(fmt.Sprintf("Background color: %s", st.BackgroundColor.Hex())),
		md(fmt.Sprintf("Background photo: %s", bg)),
		md(fmt.Sprintf("Daily verse: %s", formatBool(s.DailySubscribed))),
	}
	return strings.Join(lines, "\n")
}

// formatSearchResults lists the photos of a search in MarkdownV2.
func formatSearchResults(s entities.PhotoSearch) string {
	if len(s.Results) == 0 {
		return md(msgNoPhotos)
	}

	var b strings.Builder
	b.WriteString(bold(fmt.Sprintf("Photos for \"%s\"", s.Query)))
	b.WriteString("\n\n")
	for i, p := range s.Results {
		desc := p.Description
		if desc == "" {
			desc = "untitled"
		}
		b.WriteString(md(fmt.Sprintf("%d. %s", i+1, desc)))
		b.WriteString(" ")
		b.WriteString("[view](" + linkEscaper.Replace(p.ThumbnailURL) + ")")
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("Showing %d images", len(s.Results))
	if s.HasMore() {
		footer += fmt.Sprintf(" (page %d of %d)", s.Page, s.TotalPages)
	}
	b.WriteString("\n")
	b.WriteString(md(footer))
	return b.String()
}
