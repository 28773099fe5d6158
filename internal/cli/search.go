package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/culturedeck/internal/aggregate"
	"github.com/llehouerou/culturedeck/internal/describe"
	"github.com/llehouerou/culturedeck/internal/searchctl"
	"github.com/llehouerou/culturedeck/internal/source"
)

var (
	searchScope string
	searchMax   int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Run one search and print the grouped results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return errors.New("empty query")
		}
		scope, err := source.ParseScope(searchScope)
		if err != nil {
			return err
		}

		env, err := setup()
		if err != nil {
			return err
		}
		defer env.Close()

		maxResults := searchMax
		if maxResults <= 0 {
			maxResults = env.cfg.GetSearchConfig().MaxResults
		}

		res, err := runSearch(cmd.Context(), env.newAggregator(), query, aggregate.OptionsForScope(scope, maxResults))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if searchJSON {
			return writeJSON(out, scope, res)
		}
		writeText(out, res)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchScope, "scope", "s", "all",
		"Sources to search: all, artifacts, music")
	searchCmd.Flags().IntVarP(&searchMax, "max", "n", 0,
		"Maximum artifacts to show (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false,
		"Print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(ctx context.Context, s searchctl.Searcher, query string, opts aggregate.Options) (*aggregate.Results, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := s.Search(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "search %q", query)
	}
	return res, nil
}

var categoryTitles = map[source.Category]string{
	source.CategoryArtifacts:   "Artifacts",
	source.CategoryRecordings:  "Recordings",
	source.CategoryArtists:     "Artists",
	source.CategoryInstruments: "Instruments",
}

func writeText(w io.Writer, res *aggregate.Results) {
	if res.Empty() {
		fmt.Fprintf(w, "No results for %q\n", res.Query)
	}

	for _, cat := range source.Categories {
		items := res.Category(cat)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", categoryTitles[cat], len(items))
		for _, item := range items {
			line := "  " + item.Label()
			if sub := describe.Subtitle(item); sub != "" {
				line += "  ·  " + sub
			}
			fmt.Fprintln(w, line)
			fmt.Fprintf(w, "    %s\n", describe.URL(item))
		}
		fmt.Fprintln(w)
	}

	for _, f := range res.Failures {
		fmt.Fprintf(w, "warning: %s unavailable: %v\n", describe.SourceName(f.Source), f.Err)
	}
	fmt.Fprintf(w, "%s results in %s\n", humanize.Comma(int64(res.Len())), res.Took.Round(time.Millisecond))
}

type jsonItem struct {
	Category   source.Category   `json:"category"`
	Provenance source.Provenance `json:"provenance"`
	Key        string            `json:"key"`
	Label      string            `json:"label"`
	Subtitle   string            `json:"subtitle,omitempty"`
	URL        string            `json:"url,omitempty"`
}

type jsonFailure struct {
	Source source.Provenance `json:"source"`
	Error  string            `json:"error"`
}

type jsonResults struct {
	Query    string        `json:"query"`
	Scope    string        `json:"scope"`
	Items    []jsonItem    `json:"items"`
	Failures []jsonFailure `json:"failures,omitempty"`
}

func writeJSON(w io.Writer, scope source.Scope, res *aggregate.Results) error {
	out := jsonResults{
		Query: res.Query,
		Scope: scope.String(),
		Items: []jsonItem{},
	}
	for _, cat := range source.Categories {
		for _, item := range res.Category(cat) {
			out.Items = append(out.Items, jsonItem{
				Category:   cat,
				Provenance: item.Provenance(),
				Key:        item.Key(),
				Label:      item.Label(),
				Subtitle:   describe.Subtitle(item),
				URL:        describe.URL(item),
			})
		}
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, jsonFailure{Source: f.Source, Error: f.Err.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "encode results")
}
