package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gamecat/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "print the catalog as JSON")
	listCmd.Flags().StringP("query", "q", "", "only list names containing this text")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	query, _ := cmd.Flags().GetString("query")

	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	c, err := app.Catalog()
	if err != nil {
		return catalogError(err)
	}

	games := c.Filter(query)
	out := cmd.OutOrStdout()
	if asJSON {
		if games == nil {
			games = []catalog.Entry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	}

	if len(games) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintf(out, "No games match %q.\n", query)
		return nil
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("NAME", "SOURCE")
	for _, g := range games {
		tbl.AddRow(g.Name, g.Source)
	}
	fmt.Fprintln(out, tbl)
	return nil
}
