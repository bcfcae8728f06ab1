package logger

import (
	"testing"

	"github.com/aliskhannn/ayah-card-bot/internal/config"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"local", "production"} {
		l, err := Named(&config.Config{Env: env}, "test")
		if err != nil {
			t.Fatalf("Named(%q): %v", env, err)
		}
		if l == nil {
			t.Fatalf("Named(%q) returned nil logger", env)
		}
		dev := l.Core().Enabled(-1) // debug
		if want := env != "production"; dev != want {
			t.Errorf("env %q: debug enabled = %v, want %v", env, dev, want)
		}
	}
}
