package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gamecat/internal/server"
	"github.com/ziadkadry99/gamecat/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog web viewer",
	Long: `Starts the web viewer: the card grid, detail and lightbox pages, the JSON
API behind them, and local files under --root.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().Bool("allow-all", false, "allow cross-origin requests from any origin")
	serveCmd.Flags().Bool("open", false, "open the grid in the default browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	allowAll, _ := cmd.Flags().GetBool("allow-all")
	openBrowser, _ := cmd.Flags().GetBool("open")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Port: port, AllowAll: allowAll}, slog.Default())
	pages, err := site.New(app, siteRoot, slog.Default())
	if err != nil {
		return fmt.Errorf("creating site: %w", err)
	}
	pages.RegisterRoutes(srv.Router())

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "err", err)
		}
	}()

	if openBrowser {
		site.OpenBrowser(fmt.Sprintf("http://localhost:%d/", port))
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
