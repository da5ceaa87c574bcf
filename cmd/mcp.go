package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/gamecat/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing catalog lookup tools for AI agents.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		if c, err := app.Catalog(); err != nil {
			slog.Warn("catalog unavailable, tools will report it", "err", err)
		} else {
			slog.Info("gamecat MCP server started on stdio", "games", c.Len())
		}

		return mcpserver.NewServer(app).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
