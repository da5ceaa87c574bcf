package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gamecat/internal/viewer"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Long: `Pick a game from a searchable list, read its page, and step through its
images. Ctrl+C leaves the current view.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// Menu choices.
const (
	actionImages = "View images"
	actionBack   = "Back to games"
	actionQuit   = "Quit"
	actionNext   = "Next"
	actionPrev   = "Previous"
	actionClose  = "Close"
)

// errQuit ends the browse loop without an error.
var errQuit = errors.New("quit")

func runBrowse(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	c, err := app.Catalog()
	if err != nil {
		return catalogError(err)
	}

	entries := c.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	out := cmd.OutOrStdout()
	var sess viewer.Session
	for {
		name, err := pickGame(names)
		if err != nil {
			return quitIsNil(err)
		}

		ticket := sess.Open(name)
		d, loadErr := app.Detail(cmd.Context(), ticket.Name())
		if !sess.Apply(ticket) {
			continue
		}
		fmt.Fprintln(out)
		writeDetail(out, d, loadErr)
		_, _ = color.New(color.Faint).Fprintf(out, "\nLink: #%s\n\n", sess.Fragment())

		if err := detailMenu(out, &sess, d.Images.URLs); err != nil {
			return quitIsNil(err)
		}
		sess.Back()
	}
}

func pickGame(names []string) (string, error) {
	sel := promptui.Select{
		Label: "Game",
		Items: names,
		Size:  12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(names[index]), strings.ToLower(strings.TrimSpace(input)))
		},
		StartInSearchMode: true,
	}
	i, _, err := sel.Run()
	if err != nil {
		return "", err
	}
	return names[i], nil
}

// detailMenu runs the detail view until the user goes back to the grid.
func detailMenu(out io.Writer, sess *viewer.Session, urls []string) error {
	for {
		items := []string{actionBack, actionQuit}
		if len(urls) > 0 {
			items = append([]string{actionImages}, items...)
		}
		_, choice, err := (&promptui.Select{Label: sess.Current(), Items: items}).Run()
		if errors.Is(err, promptui.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case actionBack:
			return nil
		case actionQuit:
			return errQuit
		case actionImages:
			if sess.OpenLightbox(urls, 0) {
				if err := lightboxMenu(out, sess); err != nil {
					return err
				}
			}
		}
	}
}

// lightboxMenu steps through images until the lightbox is closed.
func lightboxMenu(out io.Writer, sess *viewer.Session) error {
	defer sess.Close()
	for {
		lb := sess.Lightbox()
		_, _ = color.New(color.Bold).Fprintf(out, "[%d/%d] ", lb.Index+1, len(lb.URLs))
		fmt.Fprintln(out, lb.Current())

		_, choice, err := (&promptui.Select{
			Label: "Image",
			Items: []string{actionNext, actionPrev, actionClose},
		}).Run()
		if errors.Is(err, promptui.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case actionNext:
			sess.Next()
		case actionPrev:
			sess.Prev()
		case actionClose:
			return nil
		}
	}
}

// quitIsNil treats leaving the prompt as a normal exit.
func quitIsNil(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}
