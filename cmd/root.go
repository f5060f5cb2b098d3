package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nexusdocs",
	Short: "EATGF documentation portal",
	Long: `nexusdocs serves the EATGF documentation portal: the topic registry,
search, favorites, reader sessions with API keys, and an assistant that
summarizes topics and answers questions in a chat widget. The same
content can be exported as a static site or exposed to AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".nexusdocs.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
