package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/ayah-card-bot/internal/config"
	"github.com/aliskhannn/ayah-card-bot/internal/delivery/telegram"
	"github.com/aliskhannn/ayah-card-bot/internal/infra/alquran"
	"github.com/aliskhannn/ayah-card-bot/internal/infra/imageload"
	"github.com/aliskhannn/ayah-card-bot/internal/infra/unsplash"
	"github.com/aliskhannn/ayah-card-bot/internal/logger"
	"github.com/aliskhannn/ayah-card-bot/internal/render"
	"github.com/aliskhannn/ayah-card-bot/internal/service"
	"github.com/aliskhannn/ayah-card-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "popular", Description: "Popular verses"},
		{Command: "ratio", Description: "Card size (1:1, 4:5, 9:16)"},
		{Command: "theme", Description: "Color theme"},
		{Command: "search", Description: "Search a background photo"},
		{Command: "nobg", Description: "Remove the background photo"},
		{Command: "export", Description: "Download the card as PNG"},
		{Command: "style", Description: "Show the current style"},
		{Command: "daily", Description: "Toggle the verse of the day"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure.
	verses := alquran.NewClient(
		cfg.QuranAPI.BaseURL,
		&http.Client{Timeout: cfg.QuranAPI.Timeout},
		alquran.Editions{
			Primary:     cfg.QuranAPI.PrimaryEdition,
			Translation: cfg.QuranAPI.TranslationEdition,
		},
		lg.Named("alquran"),
	)

	if cfg.Unsplash.AccessKey == "" {
		lg.Warn("UNSPLASH_ACCESS_KEY is not set, photo search will fail")
	}
	photos := unsplash.NewClient(unsplash.Options{
		BaseURL:    cfg.Unsplash.BaseURL,
		AccessKey:  cfg.Unsplash.AccessKey,
		PerPage:    cfg.Unsplash.PerPage,
		HTTPClient: &http.Client{Timeout: cfg.Unsplash.Timeout},
		Logger:     lg.Named("unsplash"),
	})

	images := imageload.New(imageload.Options{
		HTTPClient: &http.Client{Timeout: cfg.Background.Timeout},
		MaxBytes:   cfg.Background.MaxBytes,
		CacheSize:  cfg.Background.CacheSize,
		Logger:     lg.Named("imageload"),
	})

	fonts, err := render.LoadFonts(render.FontConfig{
		PrimaryPath:     cfg.Render.PrimaryFontPath,
		TranslationPath: cfg.Render.TranslationFontPath,
		SystemFonts:     cfg.Render.SystemFonts,
	})
	if err != nil {
		lg.Fatal("failed to load fonts", zap.Error(err))
	}
	lg.Info("fonts loaded", zap.String("primary", fonts.PrimaryName))
	engine := render.NewEngine(fonts, cfg.Render.CaptionSource)

	// Initialize storages and services.
	sessions := storage.NewSessionStorage()
	previews := storage.NewPreviewStorage()

	sessionService := service.NewSessionService(sessions, verses, photos, images, engine, lg.Named("session"))

	handler := telegram.NewHandler(bot, lg.Named("telegram"), sessionService, previews, images)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(ctx)
	})

	if cfg.Daily.Enabled {
		daily := service.NewDailyService(sessions, sessionService, cfg.Daily.Schedule, cfg.Daily.Concurrency, lg.Named("daily"))
		daily.SetNotifier(handler)
		g.Go(func() error {
			return daily.Start(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown signal received")
}
