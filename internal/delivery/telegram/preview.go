package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// maxMediaGroup is the most photos Telegram accepts in one album.
const maxMediaGroup = 10

// sendPreview renders the session and replaces the previous preview.
func (h *Handler) sendPreview(ctx context.Context, chatID int64) error {
	card, err := h.sessionService.Render(ctx, chatID)
	if err != nil {
		return err
	}
	sess := h.sessionService.Session(chatID)

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: card.FileName, Bytes: card.PNG})
	photo.Caption = formatPreviewCaption(sess)
	photo.ReplyMarkup = buildPreviewKeyboard(sess)

	sent, err := h.bot.Send(photo)
	if err != nil {
		h.forgetIfBlocked(chatID, err)
		return fmt.Errorf("send preview: %w", err)
	}

	if h.previews == nil {
		return nil
	}
	if prev, ok := h.previews.UpsertAndGetPrev(chatID, sent.MessageID); ok && prev.MessageID != sent.MessageID {
		if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, prev.MessageID)); err != nil {
			h.logger.Debug("failed to delete old preview",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", prev.MessageID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// SendCard delivers a rendered card outside of a user action, such as the
// daily verse.
func (h *Handler) SendCard(_ context.Context, chatID int64, card *entities.Card, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: card.FileName, Bytes: card.PNG})
	photo.Caption = caption
	photo.ReplyMarkup = buildPreviewKeyboard(h.sessionService.Session(chatID))

	sent, err := h.bot.Send(photo)
	if err != nil {
		h.forgetIfBlocked(chatID, err)
		return fmt.Errorf("send card: %w", err)
	}
	if h.previews != nil {
		h.previews.UpsertAndGetPrev(chatID, sent.MessageID)
	}
	return nil
}

// sendSearchResults shows the thumbnails from index from onwards as albums,
// followed by the numbered selection keyboard for all results.
func (h *Handler) sendSearchResults(chatID int64, search entities.PhotoSearch, from int) {
	if len(search.Results) == 0 {
		h.send(chatID, newPlainMessage(chatID, msgNoPhotos))
		return
	}

	for start := max(from, 0); start < len(search.Results); start += maxMediaGroup {
		end := min(start+maxMediaGroup, len(search.Results))

		media := make([]interface{}, 0, end-start)
		for i := start; i < end; i++ {
			p := search.Results[i]
			item := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(p.ThumbnailURL))
			item.Caption = fmt.Sprintf("%d", i+1)
			media = append(media, item)
		}

		if _, err := h.bot.Request(tgbotapi.NewMediaGroup(chatID, media)); err != nil {
			h.logger.Warn("failed to send photo album",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}

	msg := newMessage(chatID, formatSearchResults(search))
	msg.DisableWebPagePreview = true
	if kb := buildSearchKeyboard(search); kb != nil {
		msg.ReplyMarkup = kb
	}
	h.send(chatID, msg)
}
