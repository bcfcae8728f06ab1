package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

func (h *Handler) handleCommand(ctx context.Context, chatID int64, command, args string) {
	args = strings.TrimSpace(args)

	switch command {
	case "start":
		msg := newPlainMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildPopularKeyboard()
		h.send(chatID, msg)

	case "help":
		h.send(chatID, newPlainMessage(chatID, msgHelpBody))

	case "popular":
		msg := newPlainMessage(chatID, msgChoosePopular)
		msg.ReplyMarkup = buildPopularKeyboard()
		h.send(chatID, msg)

	case "ratio":
		if args == "" {
			msg := newPlainMessage(chatID, msgChooseRatio)
			msg.ReplyMarkup = buildRatioKeyboard()
			h.send(chatID, msg)
			return
		}
		_ = h.withErrorHandling(h.ratioHandler(args))(ctx, chatID)

	case "theme":
		if args == "" {
			msg := newPlainMessage(chatID, msgChooseTheme)
			msg.ReplyMarkup = buildPresetKeyboard()
			h.send(chatID, msg)
			return
		}
		_ = h.withErrorHandling(h.presetHandler(args))(ctx, chatID)

	case "arabic":
		size, ok := parseSize(args)
		if !ok {
			h.sendError(chatID, msgUseArabic)
			return
		}
		_ = h.withErrorHandling(h.styleHandler(func(chatID int64) (entities.Session, error) {
			return h.sessionService.SetPrimaryFontSize(chatID, size)
		}))(ctx, chatID)

	case "english":
		size, ok := parseSize(args)
		if !ok {
			h.sendError(chatID, msgUseEnglish)
			return
		}
		_ = h.withErrorHandling(h.styleHandler(func(chatID int64) (entities.Session, error) {
			return h.sessionService.SetTranslationFontSize(chatID, size)
		}))(ctx, chatID)

	case "color":
		if args == "" {
			h.sendError(chatID, msgUseColor)
			return
		}
		_ = h.withErrorHandling(h.styleHandler(func(chatID int64) (entities.Session, error) {
			return h.sessionService.SetTextColor(chatID, args)
		}))(ctx, chatID)

	case "background":
		if args == "" {
			h.sendError(chatID, msgUseBackground)
			return
		}
		_ = h.withErrorHandling(h.styleHandler(func(chatID int64) (entities.Session, error) {
			return h.sessionService.SetBackgroundColor(chatID, args)
		}))(ctx, chatID)

	case "search":
		_ = h.withErrorHandling(h.searchHandler(args))(ctx, chatID)

	case "more":
		_ = h.withErrorHandling(h.moreHandler())(ctx, chatID)

	case "nobg":
		_ = h.withErrorHandling(h.noBackgroundHandler())(ctx, chatID)

	case "export":
		_ = h.withErrorHandling(h.exportHandler())(ctx, chatID)

	case "style":
		msg := newMessage(chatID, formatStyle(h.sessionService.Session(chatID)))
		h.send(chatID, msg)

	case "daily":
		_ = h.withErrorHandling(h.dailyHandler())(ctx, chatID)

	default:
		h.send(chatID, newPlainMessage(chatID, msgUnknownCommand))
	}
}

// referenceHandler loads the verse typed by the user and previews it.
func (h *Handler) referenceHandler(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.sessionService.SubmitReference(ctx, chatID, text); err != nil {
			return err
		}
		return h.sendPreview(ctx, chatID)
	}
}

func (h *Handler) verseHandler(ref entities.VerseReference) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.sessionService.LoadVerse(ctx, chatID, ref); err != nil {
			return err
		}
		return h.sendPreview(ctx, chatID)
	}
}

func (h *Handler) ratioHandler(ratio string) HandlerFunc {
	return h.styleHandler(func(chatID int64) (entities.Session, error) {
		return h.sessionService.SetRatio(chatID, ratio)
	})
}

func (h *Handler) presetHandler(name string) HandlerFunc {
	return h.styleHandler(func(chatID int64) (entities.Session, error) {
		return h.sessionService.ApplyPreset(chatID, name)
	})
}

// styleHandler applies a state change and re-renders the preview when a
// verse is loaded.
func (h *Handler) styleHandler(update func(chatID int64) (entities.Session, error)) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess, err := update(chatID)
		if err != nil {
			return err
		}
		if sess.Verse == nil {
			h.send(chatID, newMessage(chatID, formatStyle(sess)))
			return nil
		}
		return h.sendPreview(ctx, chatID)
	}
}

func (h *Handler) searchHandler(query string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		search, err := h.sessionService.SearchPhotos(ctx, chatID, query)
		if err != nil {
			return err
		}
		h.sendSearchResults(chatID, search, 0)
		return nil
	}
}

func (h *Handler) moreHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		shown := len(h.sessionService.Session(chatID).Search.Results)
		search, err := h.sessionService.LoadMorePhotos(ctx, chatID)
		if err != nil {
			return err
		}
		h.sendSearchResults(chatID, search, shown)
		return nil
	}
}

func (h *Handler) photoHandler(photoID string) HandlerFunc {
	return h.styleHandler(func(chatID int64) (entities.Session, error) {
		return h.sessionService.SelectPhoto(chatID, photoID)
	})
}

func (h *Handler) noBackgroundHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess, err := h.sessionService.ClearBackgroundImage(chatID)
		if err != nil {
			return err
		}
		if sess.Verse == nil {
			h.send(chatID, newPlainMessage(chatID, msgBackgroundOff))
			return nil
		}
		return h.sendPreview(ctx, chatID)
	}
}

func (h *Handler) exportHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		card, err := h.sessionService.Render(ctx, chatID)
		if err != nil {
			return err
		}

		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: card.FileName, Bytes: card.PNG})
		doc.Caption = fmt.Sprintf("%s, %dx%d", card.FileName, card.Width, card.Height)
		if _, err := h.bot.Send(doc); err != nil {
			h.forgetIfBlocked(chatID, err)
			return fmt.Errorf("send document: %w", err)
		}
		return nil
	}
}

func (h *Handler) dailyHandler() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		on, err := h.sessionService.ToggleDaily(chatID)
		if err != nil {
			return err
		}
		text := msgDailyOff
		if on {
			text = msgDailyOn
		}
		msg := newPlainMessage(chatID, text)
		msg.ReplyMarkup = buildDailyKeyboard(on)
		h.send(chatID, msg)
		return nil
	}
}

// uploadHandler turns an image file sent by the user into a data URL and
// uses it as the background.
func (h *Handler) uploadHandler(fileID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if fileID == "" || h.files == nil {
			h.sendError(chatID, msgUploadFailed)
			return nil
		}

		url, err := h.bot.GetFileDirectURL(fileID)
		if err != nil {
			return fmt.Errorf("get file url: %w", err)
		}

		// The direct URL embeds the bot token, so the error is not logged.
		data, err := h.files.Download(ctx, url)
		if err != nil {
			h.logger.Warn("failed to download uploaded photo",
				zap.Int64("chat_id", chatID),
				zap.String("file_id", fileID),
			)
			h.sendError(chatID, msgUploadFailed)
			return nil
		}

		ref := entities.ImageReference{
			URL: "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data),
		}
		return h.styleHandler(func(chatID int64) (entities.Session, error) {
			return h.sessionService.SetBackgroundImage(chatID, ref)
		})(ctx, chatID)
	}
}
