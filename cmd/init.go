package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nexus-docs/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize nexusdocs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the portal and writes a .nexusdocs.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("generated config is invalid: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
