package storage

import (
	"sort"
	"sync"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// SessionStorage keeps one page session per chat in memory.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*entities.Session),
	}
}

// Get returns a snapshot of the chat's session, or a fresh default session
// if the chat has none yet. The snapshot is not stored.
func (s *SessionStorage) Get(chatID int64) entities.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[chatID]; ok {
		return sess.Clone()
	}
	return *entities.NewSession(chatID)
}

// Update applies fn to the chat's session under the write lock, creating the
// session first if needed. If fn fails the session is left unchanged.
func (s *SessionStorage) Update(chatID int64, fn func(*entities.Session) error) (entities.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.sessions[chatID]
	if !ok {
		cur = entities.NewSession(chatID)
	}

	next := cur.Clone()
	if err := fn(&next); err != nil {
		return cur.Clone(), err
	}

	s.sessions[chatID] = &next
	return next.Clone(), nil
}

// Subscribed returns the chats that opted in to the daily verse, in
// ascending order.
func (s *SessionStorage) Subscribed() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0)
	for id, sess := range s.sessions {
		if sess.DailySubscribed {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Delete removes the chat's session.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
