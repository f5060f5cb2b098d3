package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/nexus-docs/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing documentation search and topic tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reg, idx, _, err := loadContent(cfg)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		// Stdout carries the protocol.
		fmt.Fprintf(os.Stderr, "nexusdocs MCP server started on stdio (topics=%d)\n", idx.Len())

		srv := mcpserver.NewServer(reg, idx)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
