package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

const photosPerRow = 4

// buildPreviewKeyboard is attached to every card preview.
func buildPreviewKeyboard(s entities.Session) tgbotapi.InlineKeyboardMarkup {
	var ratios []tgbotapi.InlineKeyboardButton
	for _, r := range entities.AspectRatios() {
		label := string(r)
		if r == s.Ratio {
			label = "• " + label
		}
		ratios = append(ratios, tgbotapi.NewInlineKeyboardButtonData(label, buildRatioCallback(r)))
	}

	actions := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬇️ Download PNG", buildExportCallback()),
	}
	if s.Style.BackgroundImage != nil {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("🚫 Remove photo", buildNoBGCallback()))
	}

	return tgbotapi.NewInlineKeyboardMarkup(ratios, actions)
}

// buildRatioKeyboard offers every card size with its label.
func buildRatioKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range entities.AspectRatios() {
		spec := r.Spec()
		label := fmt.Sprintf("%s %s (%dx%d)", r, spec.Label, spec.Width, spec.Height)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildRatioCallback(r)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildPresetKeyboard offers the style presets.
func buildPresetKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, p := range entities.Presets() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(p.Title, buildPresetCallback(p.Name)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildPopularKeyboard lists the well-known verses.
func buildPopularKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, v := range entities.PopularVerses() {
		label := fmt.Sprintf("%s (%s)", v.Name, v.Reference)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildVerseCallback(v.Reference)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildSearchKeyboard has one numbered button per photo and a "load more"
// button while more pages exist.
func buildSearchKeyboard(s entities.PhotoSearch) *tgbotapi.InlineKeyboardMarkup {
	if len(s.Results) == 0 {
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i := range s.Results {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(i+1), buildPhotoCallback(s.Results[i].ID)))
		if len(row) == photosPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if s.HasMore() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Load more images", buildMoreCallback()),
		))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildDailyKeyboard toggles the daily verse.
func buildDailyKeyboard(subscribed bool) tgbotapi.InlineKeyboardMarkup {
	label := "🔔 Turn on daily verse"
	if subscribed {
		label = "🔕 Turn off daily verse"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildDailyCallback()),
		),
	)
}
