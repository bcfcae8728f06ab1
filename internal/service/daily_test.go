package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

type staticSubscribers []int64

func (s staticSubscribers) Subscribed() []int64 { return s }

type fakeCards struct {
	mu     sync.Mutex
	loaded map[int64]entities.VerseReference
	failOn int64
}

func (f *fakeCards) LoadVerse(_ context.Context, chatID int64, ref entities.VerseReference) (*entities.Verse, error) {
	if chatID == f.failOn {
		return nil, entities.ErrVerseUnavailable
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded[chatID] = ref
	return &entities.Verse{Reference: ref.String()}, nil
}

func (f *fakeCards) Render(_ context.Context, chatID int64) (*entities.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ref := f.loaded[chatID]
	return &entities.Card{FileName: "quran-" + ref.String() + ".png", Reference: ref.String()}, nil
}

type sentCard struct {
	chatID  int64
	card    *entities.Card
	caption string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentCard
}

func (f *fakeNotifier) SendCard(_ context.Context, chatID int64, card *entities.Card, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentCard{chatID, card, caption})
	return nil
}

func TestSendDaily(t *testing.T) {
	cards := &fakeCards{loaded: map[int64]entities.VerseReference{}, failOn: 2}
	notifier := &fakeNotifier{}

	svc := NewDailyService(staticSubscribers{1, 2, 3}, cards, "", 2, nil)
	svc.SetNotifier(notifier)
	// 1 January: first popular verse.
	svc.now = func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) }

	if sent := svc.SendDaily(context.Background()); sent != 2 {
		t.Fatalf("sent = %d, want 2", sent)
	}

	sort.Slice(notifier.sent, func(i, j int) bool { return notifier.sent[i].chatID < notifier.sent[j].chatID })
	if len(notifier.sent) != 2 || notifier.sent[0].chatID != 1 || notifier.sent[1].chatID != 3 {
		t.Fatalf("sent to %+v", notifier.sent)
	}
	for _, s := range notifier.sent {
		if s.card.Reference != "2:255" {
			t.Errorf("chat %d got %s", s.chatID, s.card.Reference)
		}
		if s.caption != "Verse of the day: Ayat al-Kursi" {
			t.Errorf("caption = %q", s.caption)
		}
	}
}

func TestSendDailyWithoutNotifier(t *testing.T) {
	cards := &fakeCards{loaded: map[int64]entities.VerseReference{}}
	svc := NewDailyService(staticSubscribers{1}, cards, "", 0, nil)

	if sent := svc.SendDaily(context.Background()); sent != 0 {
		t.Errorf("sent = %d without a notifier", sent)
	}
}

func TestDailyStartRejectsBadSchedule(t *testing.T) {
	svc := NewDailyService(staticSubscribers{}, &fakeCards{}, "every day please", 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := svc.Start(ctx); err == nil {
		t.Fatal("expected a schedule error")
	}
}

func TestDailyStartStopsWithContext(t *testing.T) {
	svc := NewDailyService(staticSubscribers{}, &fakeCards{}, "", 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("Start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
