package config

// modelPresets maps each provider to its chat and summary model.
var modelPresets = map[ProviderType]struct {
	Chat    string
	Summary string
}{
	ProviderGoogle: {Chat: "gemini-3-pro-preview", Summary: "gemini-flash-lite-latest"},
	ProviderOpenAI: {Chat: "gpt-4o", Summary: "gpt-4o-mini"},
	ProviderOllama: {Chat: "llama3", Summary: "llama3"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:          8080,
			DataDir:       ".nexusdocs",
			IdleMinutes:   30,
			MaxWorkspaces: 10000,
		},
		Storage: StorageConfig{
			Driver: StorageSQLite,
		},
		Auth: AuthConfig{
			Backend:         AuthStub,
			LatencyMS:       1500,
			UpdateLatencyMS: 1000,
		},
		Assistant: AssistantConfig{
			Provider:              ProviderGoogle,
			ChatModel:             modelPresets[ProviderGoogle].Chat,
			SummaryModel:          modelPresets[ProviderGoogle].Summary,
			RequestsPerMinute:     60,
			BreakerFailures:       5,
			BreakerTimeoutSeconds: 30,
		},
		Content: ContentConfig{
			DefaultTopic:   "intro",
			DefaultVersion: "v2.4",
		},
	}
}

// ModelsFor returns the chat and summary models for a provider, falling
// back to the Google models for unknown providers.
func ModelsFor(provider ProviderType) (chat, summary string) {
	if p, ok := modelPresets[provider]; ok {
		return p.Chat, p.Summary
	}
	p := modelPresets[ProviderGoogle]
	return p.Chat, p.Summary
}
