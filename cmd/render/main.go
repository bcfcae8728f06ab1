package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/config"
	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
	"github.com/aliskhannn/ayah-card-bot/internal/export"
	"github.com/aliskhannn/ayah-card-bot/internal/infra/alquran"
	"github.com/aliskhannn/ayah-card-bot/internal/infra/imageload"
	"github.com/aliskhannn/ayah-card-bot/internal/logger"
	"github.com/aliskhannn/ayah-card-bot/internal/render"
	"github.com/aliskhannn/ayah-card-bot/internal/service"
)

func main() {
	ref := flag.String("ref", "2:255", "Verse reference surah:ayah")
	ratio := flag.String("ratio", "1:1", "Card ratio: 1:1|4:5|9:16")
	theme := flag.String("theme", "", "Preset: classic|golden|emerald (optional)")
	arabic := flag.Int("arabic", 0, "Arabic font size, 24..48 in steps of 2 (optional)")
	english := flag.Int("english", 0, "Translation font size, 14..28 (optional)")
	textColor := flag.String("color", "", "Text color #rrggbb (optional)")
	bgColor := flag.String("bgcolor", "", "Background color #rrggbb (optional)")
	bg := flag.String("bg", "", "Background image: http(s) URL, data URL or file path (optional)")
	fontPrimary := flag.String("font", "", "Path to TTF for the Arabic text (optional; default from config)")
	fontTranslation := flag.String("fonttranslation", "", "Path to TTF for the translation (optional; default from config)")
	out := flag.String("out", "", "Output image file, .png or .jpg (default: quran-<ref>.png)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	lg, err := logger.Named(cfg, "render")
	if err != nil {
		fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	vref, ok := service.ParseReference(*ref)
	if !ok {
		fatal(fmt.Errorf("%w: %q", entities.ErrInvalidReference, *ref))
	}
	r, err := entities.ParseAspectRatio(*ratio)
	if err != nil {
		fatal(err)
	}
	style, err := buildStyle(*theme, *arabic, *english, *textColor, *bgColor)
	if err != nil {
		fatal(err)
	}

	if *fontPrimary == "" {
		*fontPrimary = cfg.Render.PrimaryFontPath
	}
	if *fontTranslation == "" {
		*fontTranslation = cfg.Render.TranslationFontPath
	}
	fonts, err := render.LoadFonts(render.FontConfig{
		PrimaryPath:     *fontPrimary,
		TranslationPath: *fontTranslation,
		SystemFonts:     cfg.Render.SystemFonts,
	})
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verses := alquran.NewClient(
		cfg.QuranAPI.BaseURL,
		&http.Client{Timeout: cfg.QuranAPI.Timeout},
		alquran.Editions{Primary: cfg.QuranAPI.PrimaryEdition, Translation: cfg.QuranAPI.TranslationEdition},
		lg.Named("alquran"),
	)
	verse, err := verses.GetVerse(ctx, vref)
	if err != nil {
		fatal(err)
	}

	var bgImage image.Image
	if *bg != "" {
		loader := imageload.New(imageload.Options{
			HTTPClient: &http.Client{Timeout: cfg.Background.Timeout},
			MaxBytes:   cfg.Background.MaxBytes,
			Logger:     lg.Named("imageload"),
		})
		bgImage, err = loader.Load(ctx, entities.ImageReference{URL: *bg})
		if err != nil {
			lg.Warn("background image unavailable, using solid color", zap.Error(err))
		}
	}

	img, err := render.NewEngine(fonts, cfg.Render.CaptionSource).Render(verse, style, r, bgImage)
	if err != nil {
		fatal(err)
	}

	path := *out
	if path == "" {
		path = export.FileName(verse)
	}
	format, err := export.FormatFromPath(path)
	if err != nil {
		fatal(err)
	}

	file, err := os.Create(path)
	if err != nil {
		fatal(err)
	}
	if err := export.Encode(file, img, format); err != nil {
		_ = file.Close()
		fatal(err)
	}
	if err := file.Close(); err != nil {
		fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s: %dx%d, %s\n", path, img.Bounds().Dx(), img.Bounds().Dy(), humanize.Bytes(uint64(info.Size())))
}

// buildStyle applies the preset first, so explicit sizes and colors win.
func buildStyle(theme string, arabic, english int, textColor, bgColor string) (entities.StyleSettings, error) {
	style := entities.DefaultStyle()
	var err error

	if theme != "" {
		p, err := entities.PresetByName(theme)
		if err != nil {
			return style, err
		}
		style = p.Apply(style)
	}
	if arabic != 0 {
		if style, err = style.WithPrimaryFontSize(arabic); err != nil {
			return style, err
		}
	}
	if english != 0 {
		if style, err = style.WithTranslationFontSize(english); err != nil {
			return style, err
		}
	}
	if textColor != "" {
		if style, err = style.WithTextColor(textColor); err != nil {
			return style, err
		}
	}
	if bgColor != "" {
		if style, err = style.WithBackgroundColor(bgColor); err != nil {
			return style, err
		}
	}
	return style, nil
}

func fatal(err error) {
	_, _ = os.Stderr.WriteString("render: " + err.Error() + "\n")
	os.Exit(1)
}
