package telegram

import (
	"errors"
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"32", 32, true},
		{" 32px ", 32, true},
		{"20PX", 20, true},
		{"", 0, false},
		{"big", 0, false},
		{"3.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseSize(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseSize(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLargestPhoto(t *testing.T) {
	sizes := []tgbotapi.PhotoSize{
		{FileID: "m", Width: 320, Height: 320},
		{FileID: "l", Width: 800, Height: 800},
		{FileID: "s", Width: 90, Height: 90},
	}
	if got := largestPhoto(sizes); got != "l" {
		t.Errorf("largestPhoto = %q, want l", got)
	}
	if got := largestPhoto(nil); got != "" {
		t.Errorf("largestPhoto(nil) = %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", entities.ErrVerseUnavailable)
	if msg, ok := userMessage(wrapped); !ok || msg != msgVerseUnavailable {
		t.Errorf("userMessage(wrapped) = %q, %v", msg, ok)
	}
	if _, ok := userMessage(errors.New("boom")); ok {
		t.Error("unexpected user message for internal error")
	}
}
