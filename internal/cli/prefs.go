package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/culturedeck/internal/describe"
	"github.com/llehouerou/culturedeck/internal/state"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List saved favorites, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPreferences(func(p *state.Preferences) error {
			writeFavorites(cmd.OutOrStdout(), p.Favorites())
			return nil
		})
	},
}

var historyClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPreferences(func(p *state.Preferences) error {
			if historyClear {
				if err := p.ClearHistory(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			}
			writeHistory(cmd.OutOrStdout(), p.History())
			if at, ok := p.HistorySavedAt(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "\nLast saved %s.\n", humanize.Time(at))
			}
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Forget all recent searches")
	rootCmd.AddCommand(favoritesCmd, historyCmd)
}

func withPreferences(fn func(*state.Preferences) error) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	store, err := env.openState()
	if err != nil {
		return err
	}
	fnErr := fn(state.NewPreferences(store))
	if err := store.Close(); err != nil && fnErr == nil {
		return err
	}
	return fnErr
}

func writeFavorites(w io.Writer, favs []state.Favorite) {
	if len(favs) == 0 {
		fmt.Fprintln(w, "No favorites yet.")
		return
	}
	for _, f := range favs {
		fmt.Fprintf(w, "★ %s\n    %s · %s · added %s\n",
			f.Label, describe.SourceName(f.Provenance), f.Key, humanize.Time(f.AddedAt))
	}
}

func writeHistory(w io.Writer, entries []state.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No recent searches.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-30s %-10s %8s results  %s\n",
			e.Query, e.Scope, humanize.Comma(int64(e.Results)), humanize.Time(e.At))
	}
}
