package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	h.answerCallback(cb.ID, "")

	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionRatio:
		fn = h.ratioHandler(ratioFromParam(data.param(0)))

	case actionPreset:
		fn = h.presetHandler(data.param(0))

	case actionPhoto:
		id := data.param(0)
		if id == "" || len(data.Params) != 1 {
			h.logInvalidCallback(cb)
			return
		}
		fn = h.photoHandler(id)

	case actionMore:
		fn = h.moreHandler()

	case actionNoBG:
		fn = h.noBackgroundHandler()

	case actionExport:
		fn = h.exportHandler()

	case actionDaily:
		fn = h.dailyHandler()

	case actionVerse:
		surah, ok1 := data.intParam(0)
		ayah, ok2 := data.intParam(1)
		ref := entities.VerseReference{Surah: surah, Ayah: ayah}
		if !ok1 || !ok2 || !ref.Valid() {
			h.logInvalidCallback(cb)
			return
		}
		fn = h.verseHandler(ref)

	default:
		h.logInvalidCallback(cb)
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) logInvalidCallback(cb *tgbotapi.CallbackQuery) {
	h.logger.Warn("invalid callback data",
		zap.String("data", cb.Data),
	)
}
