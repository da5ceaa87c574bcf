package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	siteRoot string
	token    string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "gamecat",
	Short: "Browse a catalog of games described by text files",
	Long: `gamecat reads a catalog of games from a local index or a GitHub
repository, where each game is a text file with an optional front-matter
header, and presents it as a searchable card grid with detail pages, image
galleries and embedded videos. The catalog is also available on the command
line and to AI agents over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "config file path")
	rootCmd.PersistentFlags().StringVar(&siteRoot, "root", ".", "site root for local files")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token for the content API (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging installs the default slog logger on stderr. Stdout is kept
// for command output and the MCP protocol.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
