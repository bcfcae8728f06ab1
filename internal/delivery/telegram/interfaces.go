package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
	"github.com/aliskhannn/ayah-card-bot/internal/storage"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetFileDirectURL(fileID string) (string, error)
}

type SessionService interface {
	Session(chatID int64) entities.Session
	SubmitReference(ctx context.Context, chatID int64, input string) (*entities.Verse, error)
	LoadVerse(ctx context.Context, chatID int64, ref entities.VerseReference) (*entities.Verse, error)
	SetRatio(chatID int64, ratio string) (entities.Session, error)
	SetPrimaryFontSize(chatID int64, size int) (entities.Session, error)
	SetTranslationFontSize(chatID int64, size int) (entities.Session, error)
	SetTextColor(chatID int64, hex string) (entities.Session, error)
	SetBackgroundColor(chatID int64, hex string) (entities.Session, error)
	ApplyPreset(chatID int64, name string) (entities.Session, error)
	SetBackgroundImage(chatID int64, ref entities.ImageReference) (entities.Session, error)
	ClearBackgroundImage(chatID int64) (entities.Session, error)
	SearchPhotos(ctx context.Context, chatID int64, query string) (entities.PhotoSearch, error)
	LoadMorePhotos(ctx context.Context, chatID int64) (entities.PhotoSearch, error)
	SelectPhoto(chatID int64, photoID string) (entities.Session, error)
	ToggleDaily(chatID int64) (bool, error)
	Render(ctx context.Context, chatID int64) (*entities.Card, error)
	Forget(chatID int64)
}

type PreviewStorage interface {
	UpsertAndGetPrev(chatID int64, messageID int) (prev storage.PreviewMessage, hadPrev bool)
	Delete(chatID int64)
}

// FileDownloader fetches files the user sent to the bot.
type FileDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}
