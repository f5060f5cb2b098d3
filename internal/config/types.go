package config

// ProviderType identifies a generative-model provider.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// StorageDriver selects the backing store for per-client local state.
type StorageDriver string

const (
	StorageSQLite StorageDriver = "sqlite"
	StorageRedis  StorageDriver = "redis"
	StorageMemory StorageDriver = "memory"
)

// AuthBackend selects the identity implementation.
type AuthBackend string

const (
	AuthStub     AuthBackend = "stub"
	AuthSupabase AuthBackend = "supabase"
)

// Config is the top-level nexusdocs configuration, corresponding to .nexusdocs.yml.
type Config struct {
	Environment string          `yaml:"environment" koanf:"environment"`
	Server      ServerConfig    `yaml:"server" koanf:"server"`
	Storage     StorageConfig   `yaml:"storage" koanf:"storage"`
	Auth        AuthConfig      `yaml:"auth" koanf:"auth"`
	Assistant   AssistantConfig `yaml:"assistant" koanf:"assistant"`
	Content     ContentConfig   `yaml:"content" koanf:"content"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	DataDir         string `yaml:"data_dir" koanf:"data_dir"`
	// IdleMinutes drops a client's in-memory workspace after this long
	// without a request. Zero keeps workspaces until MaxWorkspaces.
	IdleMinutes int `yaml:"idle_minutes" koanf:"idle_minutes"`
	// MaxWorkspaces caps the cached workspaces; the least recently used
	// one goes first. Zero means no cap.
	MaxWorkspaces int `yaml:"max_workspaces" koanf:"max_workspaces"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver    StorageDriver `yaml:"driver" koanf:"driver"`
	RedisAddr string        `yaml:"redis_addr" koanf:"redis_addr"`
	RedisDB   int           `yaml:"redis_db" koanf:"redis_db"`
}

// AuthConfig configures the session backend. Latencies are in milliseconds.
type AuthConfig struct {
	Backend          AuthBackend `yaml:"backend" koanf:"backend"`
	LatencyMS        int         `yaml:"latency_ms" koanf:"latency_ms"`
	UpdateLatencyMS  int         `yaml:"update_latency_ms" koanf:"update_latency_ms"`
	SupabaseURL      string      `yaml:"supabase_url" koanf:"supabase_url"`
	SupabaseKey      string      `yaml:"supabase_key" koanf:"supabase_key"`
	KeySigningSecret string      `yaml:"key_signing_secret" koanf:"key_signing_secret"`
}

// AssistantConfig configures the chat and summary collaborator.
type AssistantConfig struct {
	Provider              ProviderType `yaml:"provider" koanf:"provider"`
	ChatModel             string       `yaml:"chat_model" koanf:"chat_model"`
	SummaryModel          string       `yaml:"summary_model" koanf:"summary_model"`
	RequestsPerMinute     int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	BreakerFailures       int          `yaml:"breaker_failures" koanf:"breaker_failures"`
	BreakerTimeoutSeconds int          `yaml:"breaker_timeout_seconds" koanf:"breaker_timeout_seconds"`
}

// ContentConfig holds documentation defaults.
type ContentConfig struct {
	DefaultTopic   string `yaml:"default_topic" koanf:"default_topic"`
	DefaultVersion string `yaml:"default_version" koanf:"default_version"`
}
