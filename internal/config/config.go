package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"`        // current application environment (local, dev, production etc)
	TelegramAPIToken string     `mapstructure:"-"`          // Telegram API token loaded from environment
	QuranAPI         QuranAPI   `mapstructure:"quran_api"`  // verse API section
	Unsplash         Unsplash   `mapstructure:"unsplash"`   // image search section
	Render           Render     `mapstructure:"render"`     // fonts and caption
	Background       Background `mapstructure:"background"` // background image loading
	Daily            Daily      `mapstructure:"daily"`      // verse of the day
}

// QuranAPI configures the alquran.cloud client.
type QuranAPI struct {
	BaseURL            string        `mapstructure:"base_url"`
	PrimaryEdition     string        `mapstructure:"primary_edition"`
	TranslationEdition string        `mapstructure:"translation_edition"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// Unsplash configures the photo search client.
type Unsplash struct {
	BaseURL   string        `mapstructure:"base_url"`
	AccessKey string        `mapstructure:"-"` // loaded from environment
	PerPage   int           `mapstructure:"per_page"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Render configures font files and the caption source. Empty font paths use
// the bundled fonts; SystemFonts first looks for an installed Arabic font.
type Render struct {
	PrimaryFontPath     string `mapstructure:"primary_font_path"`
	SystemFonts         bool   `mapstructure:"system_fonts"`
	TranslationFontPath string `mapstructure:"translation_font_path"`
	CaptionSource       string `mapstructure:"caption_source"`
}

type Background struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxBytes  int64         `mapstructure:"max_bytes"`
	CacheSize int           `mapstructure:"cache_size"`
}

type Daily struct {
	Enabled     bool   `mapstructure:"enabled"`
	Schedule    string `mapstructure:"schedule"`
	Concurrency int    `mapstructure:"concurrency"`
}

// RequireTelegram reports an error when the bot token is not configured.
func (c *Config) RequireTelegram() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	return load("./config")
}

func load(configPath string) (*Config, error) {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("quran_api.base_url", "https://api.alquran.cloud/v1/")
	v.SetDefault("quran_api.primary_edition", "quran-uthmani")
	v.SetDefault("quran_api.translation_edition", "en.asad")
	v.SetDefault("quran_api.timeout", "10s")
	v.SetDefault("unsplash.base_url", "https://api.unsplash.com/")
	v.SetDefault("unsplash.per_page", 12)
	v.SetDefault("unsplash.timeout", "10s")
	v.SetDefault("render.primary_font_path", "")
	v.SetDefault("render.translation_font_path", "")
	v.SetDefault("render.system_fonts", true)
	v.SetDefault("render.caption_source", "Quran")
	v.SetDefault("background.timeout", "15s")
	v.SetDefault("background.max_bytes", 10<<20)
	v.SetDefault("background.cache_size", 32)
	v.SetDefault("daily.enabled", true)
	v.SetDefault("daily.schedule", "0 8 * * *")
	v.SetDefault("daily.concurrency", 10)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("unsplash_access_key", "UNSPLASH_ACCESS_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.Unsplash.AccessKey = v.GetString("unsplash_access_key")

	return &cfg, nil
}
