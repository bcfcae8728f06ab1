package service

import (
	"context"
	"image"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// VerseFetcher looks up a verse and its translation.
type VerseFetcher interface {
	GetVerse(ctx context.Context, ref entities.VerseReference) (*entities.Verse, error)
}

// PhotoSearcher pages through background photo search results.
type PhotoSearcher interface {
	SearchPhotos(ctx context.Context, query string, page int) (entities.PhotoPage, error)
}

// BackgroundLoader resolves a background image reference.
type BackgroundLoader interface {
	Load(ctx context.Context, ref entities.ImageReference) (image.Image, error)
}

// Renderer draws a card.
type Renderer interface {
	Render(v *entities.Verse, style entities.StyleSettings, ratio entities.AspectRatio, bg image.Image) (*image.RGBA, error)
}

// SessionStorage holds the page sessions.
type SessionStorage interface {
	Get(chatID int64) entities.Session
	Update(chatID int64, fn func(*entities.Session) error) (entities.Session, error)
	Subscribed() []int64
	Delete(chatID int64)
}

// CardNotifier sends a rendered card to a chat.
type CardNotifier interface {
	SendCard(ctx context.Context, chatID int64, card *entities.Card, caption string) error
}
