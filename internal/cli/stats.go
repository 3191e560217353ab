package cli

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tilt/internal/score"
	"github.com/llehouerou/tilt/internal/shuffle"
	"github.com/llehouerou/tilt/internal/ui/render"
)

type statsOptions struct {
	Top      int
	MinScore int
}

func newStatsCommand(a *appContext) *cobra.Command {
	opts := statsOptions{Top: 20}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the highest scored tracks and the score distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(true); err != nil {
				return err
			}
			defer a.close()

			mgr, err := a.openState()
			if err != nil {
				return err
			}
			entries, err := mgr.Scores(a.cfg.GetScoreLimits().Default).ListAll()
			if err != nil {
				return fmt.Errorf("list scores: %w", err)
			}
			if !cmd.Flags().Changed("min-score") {
				opts.MinScore = a.cfg.GetScoreLimits().Min
			}
			renderStats(a.out, entries, opts, time.Now())
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.Top, "top", "n", opts.Top, "tracks to list (0 lists all)")
	cmd.Flags().IntVar(&opts.MinScore, "min-score", 0, "only list tracks scored at least this much")
	return cmd
}

// renderStats writes the track table and the score histogram. Chances are
// computed over the whole library, not just the listed tracks.
func renderStats(w io.Writer, entries []score.Entry, opts statsOptions, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No tracks yet. Run \"tilt scan\" first.")
		return
	}

	listed := lo.Filter(entries, func(e score.Entry, _ int) bool {
		return e.Score >= opts.MinScore
	})
	if opts.Top > 0 && len(listed) > opts.Top {
		listed = listed[:opts.Top]
	}

	total := shuffle.Total(entries)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Score", "Chance", "Last played", "Track"})
	for i, e := range listed {
		t.AppendRow(table.Row{i + 1, e.Score, render.Chance(shuffle.Weight(e.Score) / total), lastPlayed(e.LastPlayed, now), e.ID})
	}
	t.Render()

	counts := lo.CountValuesBy(entries, func(e score.Entry) int { return e.Score })
	h := table.NewWriter()
	h.SetOutputMirror(w)
	h.SetStyle(table.StyleLight)
	h.AppendHeader(table.Row{"Score", "Tracks", "Share of picks"})
	for _, s := range slices.SortedFunc(maps.Keys(counts), func(a, b int) int { return cmp.Compare(b, a) }) {
		share := float64(counts[s]) * shuffle.Weight(s) / total
		h.AppendRow(table.Row{s, humanize.Comma(int64(counts[s])), render.Chance(share)})
	}
	h.AppendFooter(table.Row{"", humanize.Comma(int64(len(entries))), ""})
	h.Render()
}

func lastPlayed(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}
