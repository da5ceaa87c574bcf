package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/gamecat/internal/catalog"
	"github.com/ziadkadry99/gamecat/internal/gallery"
	"github.com/ziadkadry99/gamecat/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Resolve every game's content and images",
	Long: `Loads every game in the catalog, resolves its gallery and reports the
strategy that produced the images. With --strict the command fails when
any game is unreadable or has no images.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("concurrency", 0, "games resolved at once (defaults to maxConcurrency from config)")
	checkCmd.Flags().Bool("strict", false, "exit non-zero when a game is unreadable or has no images")
	rootCmd.AddCommand(checkCmd)
}

// checkResult is the outcome of resolving one game.
type checkResult struct {
	entry    catalog.Entry
	strategy gallery.Strategy
	images   int
	videos   int
	err      error
}

func (r checkResult) status() string {
	switch {
	case r.err != nil:
		return color.New(color.FgRed).Sprint("error")
	case r.images == 0:
		return color.New(color.FgYellow).Sprint("no images")
	default:
		return color.New(color.FgGreen).Sprint("ok")
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	strict, _ := cmd.Flags().GetBool("strict")

	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	c, err := app.Catalog()
	if err != nil {
		return catalogError(err)
	}
	if concurrency <= 0 {
		concurrency = app.Config().MaxConcurrency
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	entries := c.Entries()
	results := make([]checkResult, len(entries))

	reporter := progress.NewReporter(os.Stderr, "Checking games")
	reporter.Start(len(entries))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)
	for i, e := range entries {
		g.Go(func() error {
			d, err := app.Detail(ctx, e.Name)
			results[i] = checkResult{
				entry:    e,
				strategy: d.Images.Strategy,
				images:   len(d.Images.URLs),
				videos:   len(d.Videos),
				err:      err,
			}
			reporter.Step(e.Name)
			return nil
		})
	}
	_ = g.Wait()
	reporter.Finish()

	var missing, failed int
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("STATUS", "NAME", "STRATEGY", "IMAGES", "VIDEOS")
	for _, r := range results {
		switch {
		case r.err != nil:
			failed++
		case r.images == 0:
			missing++
		}
		tbl.AddRow(r.status(), r.entry.Name, r.strategy, r.images, r.videos)
	}
	fmt.Fprintln(color.Output, tbl)

	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(color.Output, "%d games, %d without images, %d unreadable\n", len(results), missing, failed)

	if strict && missing+failed > 0 {
		return fmt.Errorf("%d of %d games are unreadable or have no images", missing+failed, len(results))
	}
	return nil
}
