package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

const (
	DefaultDailySchedule    = "0 8 * * *"
	DefaultDailyConcurrency = 10
)

// SubscriberLister lists chats that opted in to the daily verse.
type SubscriberLister interface {
	Subscribed() []int64
}

// CardService loads verses into sessions and renders them.
type CardService interface {
	LoadVerse(ctx context.Context, chatID int64, ref entities.VerseReference) (*entities.Verse, error)
	Render(ctx context.Context, chatID int64) (*entities.Card, error)
}

// DailyService sends the verse of the day to subscribed chats.
type DailyService struct {
	subscribers SubscriberLister
	cards       CardService
	notifier    CardNotifier
	schedule    string
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

func NewDailyService(
	subscribers SubscriberLister,
	cards CardService,
	schedule string,
	concurrency int,
	logger *zap.Logger,
) *DailyService {
	if schedule == "" {
		schedule = DefaultDailySchedule
	}
	if concurrency <= 0 {
		concurrency = DefaultDailyConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyService{
		subscribers: subscribers,
		cards:       cards,
		schedule:    schedule,
		concurrency: concurrency,
		now:         time.Now,
		logger:      logger,
	}
}

// SetNotifier sets the notifier (called after the handler is created).
func (s *DailyService) SetNotifier(notifier CardNotifier) {
	s.notifier = notifier
}

// Start runs the schedule until ctx is done.
func (s *DailyService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: sending daily verse")
		sent := s.SendDaily(ctx)
		s.logger.Info("daily verse sent", zap.Int("total_sent", sent))
	})
	if err != nil {
		return fmt.Errorf("add daily cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("daily verse scheduler started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("daily verse scheduler stopped")
	return nil
}

// SendDaily delivers today's verse to every subscriber and returns how many
// chats received it.
func (s *DailyService) SendDaily(ctx context.Context) int {
	verse := entities.VerseOfTheDay(s.now().UTC())
	chats := s.subscribers.Subscribed()
	if len(chats) == 0 {
		return 0
	}

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, chatID := range chats {
		wg.Add(1)
		sem <- struct{}{} // Acquire

		go func() {
			defer wg.Done()
			defer func() { <-sem }() // Release

			if err := s.sendOne(ctx, chatID, verse); err != nil {
				s.logger.Error("failed to send daily verse",
					zap.Int64("chat_id", chatID),
					zap.String("reference", verse.Reference.String()),
					zap.Error(err))
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return sent
}

func (s *DailyService) sendOne(ctx context.Context, chatID int64, verse entities.PopularVerse) error {
	if s.notifier == nil {
		return fmt.Errorf("notifier not initialized")
	}

	if _, err := s.cards.LoadVerse(ctx, chatID, verse.Reference); err != nil {
		return fmt.Errorf("load verse: %w", err)
	}

	card, err := s.cards.Render(ctx, chatID)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := s.notifier.SendCard(ctx, chatID, card, "Verse of the day: "+verse.Name); err != nil {
		return fmt.Errorf("send card: %w", err)
	}
	return nil
}
