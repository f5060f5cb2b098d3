package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/apikeys"
	"github.com/ziadkadry99/nexus-docs/internal/config"
	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/i18n"
	"github.com/ziadkadry99/nexus-docs/internal/logging"
	"github.com/ziadkadry99/nexus-docs/internal/search"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `nexusdocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Environment, verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// loadContent loads the compiled-in registry, its search index and the
// message catalog.
func loadContent(cfg *config.Config) (*content.Registry, *search.Index, *i18n.Catalog, error) {
	reg, err := content.Default()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading registry: %w", err)
	}
	if !reg.Has(cfg.Content.DefaultTopic) {
		return nil, nil, nil, fmt.Errorf("content.default_topic %q is not in the registry", cfg.Content.DefaultTopic)
	}
	cat, err := i18n.Default()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading messages: %w", err)
	}
	return reg, search.Build(reg), cat, nil
}

// newSigner returns the API key signer. Without a configured secret the
// server signs with a random one, so keys stop verifying on restart.
func newSigner(cfg *config.Config, logger *zap.Logger) (*apikeys.Signer, error) {
	secret := cfg.Auth.KeySigningSecret
	if secret == "" {
		logger.Warn("auth.key_signing_secret not set; API keys will not survive a restart")
		secret = uuid.NewString()
	}
	return apikeys.NewSigner(secret)
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
