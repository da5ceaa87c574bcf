package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a game's description, images and videos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if _, err := app.Catalog(); err != nil {
			return catalogError(err)
		}

		d, err := app.Detail(cmd.Context(), args[0])
		if d.Entry.Name == "" {
			return err
		}
		writeDetail(cmd.OutOrStdout(), d, err)
		if err != nil {
			return fmt.Errorf("loading %s: %w", d.Entry.Name, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
