package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/config"
)

// New returns a JSON production logger for the production environment and a
// console development logger otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// Named is New with the given logger name, used by the command line tools.
func Named(cfg *config.Config, name string) (*zap.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return l.Named(name), nil
}
