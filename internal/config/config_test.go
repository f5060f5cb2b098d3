package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Assistant.Provider != ProviderGoogle {
		t.Errorf("expected default provider %q, got %q", ProviderGoogle, cfg.Assistant.Provider)
	}
	if cfg.Assistant.ChatModel != "gemini-3-pro-preview" {
		t.Errorf("unexpected chat model %q", cfg.Assistant.ChatModel)
	}
	if cfg.Assistant.SummaryModel != "gemini-flash-lite-latest" {
		t.Errorf("unexpected summary model %q", cfg.Assistant.SummaryModel)
	}
	if cfg.Auth.LatencyMS != 1500 || cfg.Auth.UpdateLatencyMS != 1000 {
		t.Errorf("unexpected latencies %d/%d", cfg.Auth.LatencyMS, cfg.Auth.UpdateLatencyMS)
	}
	if cfg.Content.DefaultTopic != "intro" {
		t.Errorf("expected default topic intro, got %q", cfg.Content.DefaultTopic)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.nexusdocs.yml")

	original := DefaultConfig()
	original.Server.Port = 9090
	original.Storage.Driver = StorageRedis
	original.Storage.RedisAddr = "localhost:6379"
	original.Assistant.Provider = ProviderOpenAI
	original.Assistant.ChatModel = "gpt-4o"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Storage.Driver != StorageRedis {
		t.Errorf("driver: got %q", loaded.Storage.Driver)
	}
	if loaded.Storage.RedisAddr != "localhost:6379" {
		t.Errorf("redis addr: got %q", loaded.Storage.RedisAddr)
	}
	if loaded.Assistant.ChatModel != "gpt-4o" {
		t.Errorf("chat model: got %q", loaded.Assistant.ChatModel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("NEXUS_ENVIRONMENT", "production")
	t.Setenv("NEXUS_SERVER__PORT", "7070")
	t.Setenv("NEXUS_ASSISTANT__PROVIDER", "ollama")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Environment != "production" {
		t.Errorf("environment: got %q", loaded.Environment)
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("port override failed: got %d", loaded.Server.Port)
	}
	if loaded.Assistant.Provider != ProviderOllama {
		t.Errorf("provider override failed: got %q", loaded.Assistant.Provider)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"NEXUS_ENVIRONMENT":           "environment",
		"NEXUS_SERVER__PORT":          "server.port",
		"NEXUS_AUTH__SUPABASE_URL":    "auth.supabase_url",
		"NEXUS_STORAGE__REDIS_ADDR":   "storage.redis_addr",
		"NEXUS_ASSISTANT__CHAT_MODEL": "assistant.chat_model",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"invalid provider", func(c *Config) { c.Assistant.Provider = "anthropic" }, false},
		{"empty provider", func(c *Config) { c.Assistant.Provider = "" }, false},
		{"empty chat model", func(c *Config) { c.Assistant.ChatModel = "" }, false},
		{"invalid driver", func(c *Config) { c.Storage.Driver = "bolt" }, false},
		{"redis without addr", func(c *Config) { c.Storage.Driver = StorageRedis }, false},
		{"redis with addr", func(c *Config) {
			c.Storage.Driver = StorageRedis
			c.Storage.RedisAddr = "localhost:6379"
		}, true},
		{"negative latency", func(c *Config) { c.Auth.LatencyMS = -1 }, false},
		{"supabase without url", func(c *Config) { c.Auth.Backend = AuthSupabase }, false},
		{"supabase configured", func(c *Config) {
			c.Auth.Backend = AuthSupabase
			c.Auth.SupabaseURL = "https://x.supabase.co"
			c.Auth.SupabaseKey = "anon"
		}, true},
		{"invalid backend", func(c *Config) { c.Auth.Backend = "ldap" }, false},
		{"empty default topic", func(c *Config) { c.Content.DefaultTopic = "" }, false},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, false},
		{"negative idle", func(c *Config) { c.Server.IdleMinutes = -1 }, false},
		{"memory without data dir", func(c *Config) {
			c.Storage.Driver = StorageMemory
			c.Server.DataDir = ""
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestModelsFor(t *testing.T) {
	chat, summary := ModelsFor(ProviderOllama)
	if chat != "llama3" || summary != "llama3" {
		t.Errorf("unexpected ollama models %q/%q", chat, summary)
	}
	chat, _ = ModelsFor("unknown")
	if chat != "gemini-3-pro-preview" {
		t.Errorf("expected google fallback, got %q", chat)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderGoogle, "GOOGLE_API_KEY"},
		{ProviderOllama, ""},
	}
	for _, tt := range tests {
		if got := APIKeyEnvVar(tt.provider); got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
