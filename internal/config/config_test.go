package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("UNSPLASH_ACCESS_KEY", "")
	t.Setenv("APP_ENV", "")

	cfg, err := load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.QuranAPI.PrimaryEdition != "quran-uthmani" || cfg.QuranAPI.TranslationEdition != "en.asad" {
		t.Errorf("editions = %+v", cfg.QuranAPI)
	}
	if cfg.QuranAPI.Timeout != 10*time.Second {
		t.Errorf("quran timeout = %v", cfg.QuranAPI.Timeout)
	}
	if cfg.Unsplash.PerPage != 12 {
		t.Errorf("per_page = %d", cfg.Unsplash.PerPage)
	}
	if !cfg.Render.SystemFonts {
		t.Error("system fonts disabled by default")
	}
	if cfg.Render.CaptionSource != "Quran" {
		t.Errorf("caption source = %q", cfg.Render.CaptionSource)
	}
	if cfg.Background.MaxBytes != 10<<20 || cfg.Background.CacheSize != 32 {
		t.Errorf("background = %+v", cfg.Background)
	}
	if !cfg.Daily.Enabled || cfg.Daily.Schedule != "0 8 * * *" || cfg.Daily.Concurrency != 10 {
		t.Errorf("daily = %+v", cfg.Daily)
	}

	if err := cfg.RequireTelegram(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("RequireTelegram = %v", err)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("unsplash:\n  per_page: 30\nrender:\n  caption_source: Al-Quran\n  primary_font_path: /fonts/Amiri.ttf\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")
	t.Setenv("UNSPLASH_ACCESS_KEY", "key")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DAILY_SCHEDULE", "0 6 * * *")

	cfg, err := load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.Unsplash.PerPage != 30 || cfg.Unsplash.AccessKey != "key" {
		t.Errorf("unsplash = %+v", cfg.Unsplash)
	}
	if cfg.Render.CaptionSource != "Al-Quran" || cfg.Render.PrimaryFontPath != "/fonts/Amiri.ttf" {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Daily.Schedule != "0 6 * * *" {
		t.Errorf("schedule = %q", cfg.Daily.Schedule)
	}
	if err := cfg.RequireTelegram(); err != nil {
		t.Errorf("RequireTelegram = %v", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("daily: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := load(dir); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
