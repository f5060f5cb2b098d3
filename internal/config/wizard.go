package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to nexusdocs! Let's configure the portal.")
	fmt.Println()

	cfg := DefaultConfig()

	providerPrompt := promptui.Select{
		Label: "Select assistant provider",
		Items: []string{"google", "openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Assistant.Provider = ProviderType(providerStr)
	cfg.Assistant.ChatModel, cfg.Assistant.SummaryModel = ModelsFor(cfg.Assistant.Provider)

	storagePrompt := promptui.Select{
		Label: "Select storage driver",
		Items: []string{"sqlite", "redis", "memory"},
	}
	_, driver, err := storagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("storage selection: %w", err)
	}
	cfg.Storage.Driver = StorageDriver(driver)

	if cfg.Storage.Driver == StorageRedis {
		addrPrompt := promptui.Prompt{
			Label:   "Redis address",
			Default: "localhost:6379",
		}
		cfg.Storage.RedisAddr, err = addrPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("redis address: %w", err)
		}
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	authPrompt := promptui.Select{
		Label: "Select identity backend",
		Items: []string{"stub", "supabase"},
	}
	_, backend, err := authPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("auth selection: %w", err)
	}
	cfg.Auth.Backend = AuthBackend(backend)

	if cfg.Auth.Backend == AuthSupabase {
		urlPrompt := promptui.Prompt{Label: "Supabase project URL"}
		if cfg.Auth.SupabaseURL, err = urlPrompt.Run(); err != nil {
			return nil, fmt.Errorf("supabase url: %w", err)
		}
		keyPrompt := promptui.Prompt{Label: "Supabase anon key", Mask: '*'}
		if cfg.Auth.SupabaseKey, err = keyPrompt.Run(); err != nil {
			return nil, fmt.Errorf("supabase key: %w", err)
		}
	}

	if envVar := APIKeyEnvVar(cfg.Assistant.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running nexusdocs server.\n", envVar)
	}
	if cfg.Auth.KeySigningSecret == "" {
		fmt.Printf("Note: Set %sAUTH__KEY_SIGNING_SECRET to keep API keys valid across restarts.\n", EnvPrefix)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
