package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-scout/internal/aggregate"
	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/dashboard"
	"github.com/albapepper/scoracle-scout/internal/rank"
	"github.com/albapepper/scoracle-scout/internal/scoring"
	"github.com/albapepper/scoracle-scout/internal/store"
)

// --------------------------------------------------------------------------
// leaderboard
// --------------------------------------------------------------------------

func leaderboardCmd() *cobra.Command {
	var (
		sortKey        string
		dir            string
		excludeDefense bool
		search         string
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the ranked team leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rank.ParseDirection(dir)
			if err != nil {
				return err
			}
			q := dashboard.Query{
				Filter: aggregate.Filter{ExcludeDefense: excludeDefense, Search: search},
				Sort:   rank.Sort{Key: sortKey, Direction: d},
			}
			return runBoard(q, func(b dashboard.Board, _ *dashboard.Engine, _ store.Snapshot) error {
				return printLeaderboard(cmd.OutOrStdout(), b)
			})
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", rank.DefaultKey, "Sort key: "+strings.Join(rank.Keys(), ", "))
	cmd.Flags().StringVar(&dir, "dir", string(rank.Descending), "Sort direction (asc, desc)")
	cmd.Flags().BoolVar(&excludeDefense, "exclude-defense", false, "Drop matches where the team played defense")
	cmd.Flags().StringVar(&search, "search", "", "Team identity substring")
	return cmd
}

func printLeaderboard(w io.Writer, b dashboard.Board) error {
	fmt.Fprintf(w, "%d records, %d teams, %.1f avg points (revision %d)\n\n",
		b.Overview.RecordsScouted, b.Overview.TeamsScouted, b.Overview.AvgTotalPoints, b.Revision)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTEAM\tMATCHES\tTOTAL\tAUTO\tTELEOP\tCORAL\tALGAE\tCLIMB\tCAPABILITIES")
	for i, s := range b.Teams {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.0f%%\t%s\n",
			i+1, s.Team, s.MatchesIncluded,
			s.AvgTotalPoints, s.AvgAutoPoints, s.AvgTeleopPoints,
			s.AvgCoral, s.AvgAlgae, s.ClimbRate*100,
			strings.Join(s.Capabilities, ", "))
	}
	return tw.Flush()
}

// --------------------------------------------------------------------------
// team
// --------------------------------------------------------------------------

func teamCmd() *cobra.Command {
	var excludeDefense bool
	cmd := &cobra.Command{
		Use:   "team <team>",
		Short: "Print one team's summary, profile and match trend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(dashboard.Query{}, func(_ dashboard.Board, e *dashboard.Engine, snap store.Snapshot) error {
				detail, err := e.Team(snap, args[0], aggregate.Filter{ExcludeDefense: excludeDefense})
				if err != nil {
					return fmt.Errorf("team %s: %w", args[0], err)
				}
				return printTeam(cmd.OutOrStdout(), detail)
			})
		},
	}
	cmd.Flags().BoolVar(&excludeDefense, "exclude-defense", false, "Drop matches where the team played defense")
	return cmd
}

func printTeam(w io.Writer, d dashboard.TeamDetail) error {
	s := d.Summary
	fmt.Fprintf(w, "Team %s: %d matches, %.1f avg points (auto %.1f, teleop %.1f)\n",
		s.Team, s.MatchesIncluded, s.AvgTotalPoints, s.AvgAutoPoints, s.AvgTeleopPoints)
	if len(s.Capabilities) > 0 {
		fmt.Fprintf(w, "Capabilities: %s\n", strings.Join(s.Capabilities, ", "))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tRAW\tSCALED")
	for _, p := range d.Profile {
		fmt.Fprintf(tw, "%s\t%.2f\t%.1f\n", p.Metric, p.Raw, p.Value)
	}
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "MATCH\tPOINTS\t")
	for _, t := range d.Trend {
		fmt.Fprintf(tw, "%s\t%d\t\n", t.Label, t.Points)
	}
	return tw.Flush()
}

// --------------------------------------------------------------------------
// compare
// --------------------------------------------------------------------------

func compareCmd() *cobra.Command {
	var excludeDefense bool
	cmd := &cobra.Command{
		Use:   "compare <team>...",
		Short: "Compare up to six teams side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := dashboard.Query{
				Filter:    aggregate.Filter{ExcludeDefense: excludeDefense},
				Selection: args,
			}
			return runBoard(q, func(b dashboard.Board, _ *dashboard.Engine, _ store.Snapshot) error {
				return printComparison(cmd.OutOrStdout(), b)
			})
		},
	}
	cmd.Flags().BoolVar(&excludeDefense, "exclude-defense", false, "Drop matches where the team played defense")
	return cmd
}

func printComparison(w io.Writer, b dashboard.Board) error {
	if dropped := len(b.Query.Selection) - len(b.Comparison); dropped > 0 {
		fmt.Fprintf(w, "%d selected team(s) have no included records\n", dropped)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tAUTO\tTELEOP\tTOTAL")
	for _, c := range b.Comparison {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\n", c.Team, c.Auto, c.Teleop, c.Total)
	}
	return tw.Flush()
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runBoard opens the store, loads the point table and evaluates q once.
func runBoard(q dashboard.Query, fn func(b dashboard.Board, e *dashboard.Engine, snap store.Snapshot) error) error {
	return runStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
		table, err := scoring.LoadPointTable(cfg.PointTableFile)
		if err != nil {
			return err
		}
		snap, err := st.Snapshot(ctx)
		if err != nil {
			return err
		}
		e := dashboard.New(table)
		b, err := e.Board(snap, q)
		if err != nil {
			return err
		}
		return fn(b, e, snap)
	})
}
