package telegram

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// parseSize reads a font size argument such as "32" or "32px".
func parseSize(arg string) (int, bool) {
	arg = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(arg)), "px")
	n, err := strconv.Atoi(arg)
	return n, err == nil
}

// largestPhoto returns the file ID of the biggest size Telegram offers.
func largestPhoto(sizes []tgbotapi.PhotoSize) string {
	best := -1
	id := ""
	for _, p := range sizes {
		if area := p.Width * p.Height; area > best {
			best = area
			id = p.FileID
		}
	}
	return id
}
