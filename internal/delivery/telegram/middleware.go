package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// userErrors maps expected errors to the reply the user gets.
var userErrors = []struct {
	err error
	msg string
}{
	{entities.ErrInvalidReference, msgInvalidReference},
	{entities.ErrVerseUnavailable, msgVerseUnavailable},
	{entities.ErrFetchInProgress, msgFetchInProgress},
	{entities.ErrSearchInProgress, msgSearchInProgress},
	{entities.ErrNoVerse, msgNoVerse},
	{entities.ErrInvalidColor, msgInvalidColor},
	{entities.ErrFontSizeOutOfRange, msgFontSizeOutOfRange},
	{entities.ErrUnknownPreset, msgUnknownPreset},
	{entities.ErrUnknownAspectRatio, msgUnknownRatio},
	{entities.ErrPhotoNotFound, msgPhotoNotFound},
	{entities.ErrNoSearchQuery, msgUseSearch},
	{entities.ErrNoMorePhotos, msgNoMorePhotos},
}

func userMessage(err error) (string, bool) {
	for _, ue := range userErrors {
		if errors.Is(err, ue.err) {
			return ue.msg, true
		}
	}
	return "", false
}

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		// The chat was already dropped and cannot be answered.
		if blocked(err) {
			return nil
		}

		if msg, ok := userMessage(err); ok {
			h.logger.Debug("user error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msg)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}
