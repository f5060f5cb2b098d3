package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides. Nested keys use a
// double underscore: NEXUS_SERVER__PORT -> server.port.
const EnvPrefix = "NEXUS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NEXUS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderGoogle: true,
	ProviderOpenAI: true,
	ProviderOllama: true,
}

var validDrivers = map[StorageDriver]bool{
	StorageSQLite: true,
	StorageRedis:  true,
	StorageMemory: true,
}

var validBackends = map[AuthBackend]bool{
	AuthStub:     true,
	AuthSupabase: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.IdleMinutes < 0 || c.Server.MaxWorkspaces < 0 {
		return fmt.Errorf("server.idle_minutes and server.max_workspaces must not be negative")
	}
	if c.Server.DataDir == "" && c.Storage.Driver == StorageSQLite {
		return fmt.Errorf("server.data_dir is required for the sqlite driver")
	}

	if !validDrivers[c.Storage.Driver] {
		return fmt.Errorf("invalid storage.driver %q: must be one of sqlite, redis, memory", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageRedis && c.Storage.RedisAddr == "" {
		return fmt.Errorf("storage.redis_addr is required for the redis driver")
	}

	if !validBackends[c.Auth.Backend] {
		return fmt.Errorf("invalid auth.backend %q: must be one of stub, supabase", c.Auth.Backend)
	}
	if c.Auth.LatencyMS < 0 || c.Auth.UpdateLatencyMS < 0 {
		return fmt.Errorf("auth latency must be non-negative")
	}
	if c.Auth.Backend == AuthSupabase && (c.Auth.SupabaseURL == "" || c.Auth.SupabaseKey == "") {
		return fmt.Errorf("auth.supabase_url and auth.supabase_key are required for the supabase backend")
	}

	if c.Assistant.Provider == "" {
		return fmt.Errorf("assistant.provider is required")
	}
	if !validProviders[c.Assistant.Provider] {
		return fmt.Errorf("invalid assistant.provider %q: must be one of google, openai, ollama", c.Assistant.Provider)
	}
	if c.Assistant.ChatModel == "" || c.Assistant.SummaryModel == "" {
		return fmt.Errorf("assistant.chat_model and assistant.summary_model are required")
	}
	if c.Assistant.RequestsPerMinute < 0 {
		return fmt.Errorf("assistant.requests_per_minute must be non-negative")
	}
	if c.Assistant.BreakerFailures < 0 || c.Assistant.BreakerTimeoutSeconds < 0 {
		return fmt.Errorf("assistant breaker settings must be non-negative")
	}

	if c.Content.DefaultTopic == "" {
		return fmt.Errorf("content.default_topic is required")
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	default:
		return ""
	}
}
