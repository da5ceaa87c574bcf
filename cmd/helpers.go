package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/ziadkadry99/gamecat/internal/config"
	"github.com/ziadkadry99/gamecat/internal/fetch"
	"github.com/ziadkadry99/gamecat/internal/viewer"
)

// fallbackConfig is read when the --config file does not exist.
const fallbackConfig = "config.example.json"

// configPaths lists the config file and its fallback next to it.
func configPaths() []string {
	return []string{cfgFile, filepath.Join(filepath.Dir(cfgFile), fallbackConfig)}
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPaths()...)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if token != "" {
		cfg.Token = token
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfg.Source, err)
	}
	if cfg.Source == "" {
		slog.Debug("no config file found, using defaults", "paths", configPaths())
	} else {
		slog.Debug("config loaded", "path", cfg.Source)
	}
	return cfg, nil
}

// newApp builds the application from the config and loads the catalog. A
// catalog load failure is not an error here; it is reported by
// App.Catalog.
func newApp(ctx context.Context) (*viewer.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := fetch.New(fetch.Options{
		Root:       siteRoot,
		APIBaseURL: cfg.APIBaseURL,
		Token:      cfg.Token,
		Timeout:    time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("creating content client: %w", err)
	}
	app := viewer.New(cfg, client, slog.Default())
	_ = app.Reload(ctx)
	return app, nil
}

// catalogError turns a catalog load error into the message the grid shows.
func catalogError(err error) error {
	return fmt.Errorf("%s (%w)", viewer.CatalogMessage(err), err)
}

// writeDetail prints a game's page as text.
func writeDetail(w io.Writer, d viewer.Detail, err error) {
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)
	heading := color.New(color.Bold)

	_, _ = title.Fprintln(w, d.Entry.Name)
	_, _ = faint.Fprintln(w, d.Entry.Source)
	fmt.Fprintln(w)

	if err != nil {
		_, _ = color.New(color.FgRed).Fprintln(w, viewer.MsgContentUnavailable)
		return
	}

	if d.Summary != "" {
		_, _ = color.New(color.Italic).Fprintln(w, d.Summary)
		fmt.Fprintln(w)
	}
	if d.Document.Body != "" {
		fmt.Fprintln(w, d.Document.Body)
		fmt.Fprintln(w)
	}

	if d.Images.Empty() {
		_, _ = faint.Fprintln(w, viewer.MsgNoImages)
	} else {
		_, _ = heading.Fprintf(w, "Images")
		_, _ = faint.Fprintf(w, " (%s, %d)\n", d.Images.Strategy, len(d.Images.URLs))
		for _, u := range d.Images.URLs {
			fmt.Fprintf(w, "  %s\n", u)
		}
	}

	if len(d.Videos) > 0 {
		_, _ = heading.Fprintln(w, "Videos")
		for _, v := range d.Videos {
			fmt.Fprintf(w, "  %s\n", v)
		}
	}
}
