package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/internal/catalog"
	"github.com/vmunix/renamarr/internal/match"
	"github.com/vmunix/renamarr/internal/rename"
	"github.com/vmunix/renamarr/pkg/epname"
)

var (
	renameSeason  int
	renameRefresh bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <show> <dir>",
	Short: "Show the rename plan without touching any file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runPlan(cmd.Context(), args[0], args[1], true)
		return err
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <show> <dir>",
	Short: "Rename episode files to the canonical convention",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		applied, err := runPlan(cmd.Context(), args[0], args[1], false)
		if err != nil {
			return err
		}
		fmt.Printf("Applied %d renames\n", applied)
		return nil
	},
}

func runPlan(ctx context.Context, showTitle, dir string, dryRun bool) (int, error) {
	a, err := newApp()
	if err != nil {
		return 0, err
	}
	defer a.Close()

	show, err := a.store.GetShowByTitle(showTitle)
	if err != nil {
		return 0, fmt.Errorf("show %q: %w (try 'renamarr shows')", showTitle, err)
	}

	episodes, fresh, err := a.meta.Episodes(ctx, show, renameRefresh)
	if err != nil {
		return 0, err
	}
	if !fresh && show.LastRefreshed != nil {
		fmt.Printf("Using cached episode data (last refreshed %s)\n",
			show.LastRefreshed.Format("2006-01-02"))
	}

	index, err := match.NewIndex(episodes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", show.Title, err)
	}
	matcher := match.NewMatcher(index, match.Config{
		SimilarityThreshold: a.cfg.Matching.SimilarityThreshold,
		AmbiguityMargin:     a.cfg.Matching.AmbiguityMargin,
	})

	files, err := rename.ScanDir(dir)
	if err != nil {
		return 0, err
	}
	if renameSeason >= 0 {
		files = filterSeason(files, renameSeason)
	}
	if len(files) == 0 {
		fmt.Println("No video files to rename.")
		return 0, nil
	}

	reportDiscrepancies(files, episodes)

	planner := rename.NewPlanner(show.Title, epname.NewNamer(a.cfg.Library.Naming))
	plan := planner.Plan(matcher.MatchAll(files))

	printPlan(plan)

	if dryRun {
		return 0, nil
	}

	executor := rename.NewExecutor(a.log.With("component", "rename"))
	if err := executor.Apply(ctx, plan); err != nil {
		return 0, err
	}

	applied := 0
	for _, op := range plan.Operations {
		if op.Status == rename.StatusApplied && !op.Noop() {
			applied++
		}
	}
	return applied, nil
}

func filterSeason(files []epname.LocalFile, season int) []epname.LocalFile {
	kept := files[:0:0]
	for _, f := range files {
		if f.Season != nil && *f.Season == season {
			kept = append(kept, f)
		}
	}
	return kept
}

// reportDiscrepancies warns when the file count for a season doesn't line
// up with the episode count the source knows about.
func reportDiscrepancies(files []epname.LocalFile, episodes []*catalog.Episode) {
	epCount := make(map[int]int)
	for _, ep := range episodes {
		epCount[ep.Season]++
	}
	fileCount := make(map[int]int)
	for _, f := range files {
		if f.Season != nil {
			fileCount[*f.Season]++
		}
	}
	for season, n := range fileCount {
		if have := epCount[season]; n != have {
			fmt.Printf("Warning: season %d has %d files but %d known episodes\n", season, n, have)
		}
	}
}

func printPlan(plan *rename.Plan) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, op := range plan.Operations {
		marker := "->"
		if op.Noop() {
			marker = "=="
		}
		if op.Status == rename.StatusSkipped {
			fmt.Fprintf(w, "skip\t%s\t(%v)\n", op.Source, op.Err)
			continue
		}
		fmt.Fprintf(w, "plan\t%s\t%s %s\n", op.Source, marker, op.Destination)
	}
	for _, u := range plan.Unresolved {
		fmt.Fprintf(w, "unresolved\t%s\t(%v)\n", u.File.Path, u.Reason)
		for _, alt := range u.Alternatives {
			fmt.Fprintf(w, "\t  candidate\tS%02dE%02d %s\n", alt.Season, alt.Number, alt.Title)
		}
	}
	_ = w.Flush()
}

func init() {
	for _, cmd := range []*cobra.Command{previewCmd, renameCmd} {
		cmd.Flags().IntVar(&renameSeason, "season", -1, "Limit to one season")
		cmd.Flags().BoolVar(&renameRefresh, "refresh", false, "Fetch fresh episode data first")
	}
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(renameCmd)
}
