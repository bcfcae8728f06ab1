package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot            BotAPI
	logger         *zap.Logger
	sessionService SessionService
	previews       PreviewStorage
	files          FileDownloader
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	sessionService SessionService,
	previews PreviewStorage,
	files FileDownloader,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		bot:            bot,
		logger:         logger,
		sessionService: sessionService,
		previews:       previews,
		files:          files,
	}
}

// Run consumes updates until ctx is done. Every update is handled in its
// own goroutine; Run waits for them before returning.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.handleUpdate(ctx, update)
			}()
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling update",
				zap.Int("update_id", update.UpdateID),
				zap.Any("panic", r),
			)
		}
	}()

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if len(update.Message.Photo) > 0 {
		_ = h.withErrorHandling(h.uploadHandler(largestPhoto(update.Message.Photo)))(ctx, chatID)
		return
	}

	// Images sent as files arrive uncompressed as documents.
	if doc := update.Message.Document; doc != nil {
		if !strings.HasPrefix(doc.MimeType, "image/") {
			h.sendError(chatID, msgNotAnImage)
			return
		}
		_ = h.withErrorHandling(h.uploadHandler(doc.FileID))(ctx, chatID)
		return
	}

	if update.Message.IsCommand() {
		h.handleCommand(ctx, chatID, update.Message.Command(), update.Message.CommandArguments())
		return
	}

	_ = h.withErrorHandling(h.referenceHandler(update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newPlainMessage(chatID, err)
	h.send(chatID, msg)
}

func (h *Handler) send(chatID int64, c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		if h.forgetIfBlocked(chatID, err) {
			return
		}
		h.logger.Error("failed to send telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// blocked reports whether Telegram refused to deliver because the user
// blocked the bot or left the chat.
func blocked(err error) bool {
	var apiErr *tgbotapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden
}

// forgetIfBlocked drops the chat's session and preview when err is a
// blocked-bot error.
func (h *Handler) forgetIfBlocked(chatID int64, err error) bool {
	if !blocked(err) {
		return false
	}
	h.sessionService.Forget(chatID)
	if h.previews != nil {
		h.previews.Delete(chatID)
	}
	h.logger.Info("bot blocked by chat, session dropped",
		zap.Int64("chat_id", chatID),
	)
	return true
}

// answerCallback removes the loading indicator from the pressed button.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
