// Package cli defines the culturedeck command tree.
package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/culturedeck/internal/app"
	"github.com/llehouerou/culturedeck/internal/errmsg"
	"github.com/llehouerou/culturedeck/internal/state"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "culturedeck",
	Short: "Search museum collections and MusicBrainz from the terminal",
	Long: `culturedeck searches the Met, the Cleveland Museum of Art and MusicBrainz
at once and groups the results by category.

Commands:
  culturedeck             Run the interactive search (default)
  culturedeck search Q    Run one search and print the results
  culturedeck favorites   List saved favorites
  culturedeck history     List recent searches`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides the config file)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	store, err := env.openState()
	if err != nil {
		return errors.Wrap(err, string(errmsg.OpStateOpen))
	}
	defer func() {
		if err := store.Close(); err != nil {
			env.logger.Warn("close preferences store", zap.Error(err))
		}
	}()

	m := app.New(app.Options{
		Searcher: env.newAggregator(),
		Search:   env.searchConfig(),
		Prefs:    state.NewPreferences(store),
		Logger:   env.logger.Named("app"),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run program")
	}
	return nil
}
