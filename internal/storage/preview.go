package storage

import (
	"sync"
	"time"
)

// PreviewMessage is the last card preview sent to a chat.
type PreviewMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// PreviewStorage remembers the last preview per chat so a new preview can
// replace the old one.
type PreviewStorage struct {
	mu       sync.RWMutex
	messages map[int64]PreviewMessage
}

func NewPreviewStorage() *PreviewStorage {
	return &PreviewStorage{
		messages: make(map[int64]PreviewMessage),
	}
}

func (s *PreviewStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}

// UpsertAndGetPrev stores messageID as the chat's preview and returns the
// one it replaced.
func (s *PreviewStorage) UpsertAndGetPrev(chatID int64, messageID int) (prev PreviewMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]

	s.messages[chatID] = PreviewMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}

	return prev, hadPrev
}
