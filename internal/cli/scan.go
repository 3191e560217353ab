package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tilt/internal/errmsg"
	"github.com/llehouerou/tilt/internal/library"
)

func newScanCommand(a *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [folder...]",
		Short: "Register the audio files found in the library folders",
		Long: "Walk the given folders, or the configured library sources, and add every audio file " +
			"to the database with the default score. Known tracks keep their score.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(true); err != nil {
				return err
			}
			defer a.close()

			mgr, err := a.openState()
			if err != nil {
				return err
			}
			sources := args
			if len(sources) == 0 {
				sources = a.cfg.GetLibrarySources()
			}
			scores := mgr.Scores(a.cfg.GetScoreLimits().Default)
			res, err := scanLibrary(cmd.Context(), a, scores, sources)
			if err != nil {
				return err
			}
			renderScanResult(a, res)
			return nil
		},
	}
}

// scanLibrary registers the files under sources, printing progress.
func scanLibrary(ctx context.Context, a *appContext, reg library.Registrar, sources []string) (library.ScanResult, error) {
	s := library.NewScanner(reg, a.logger)
	s.OnProgress(func(p library.ScanProgress) {
		switch p.Phase {
		case "scanning":
			if p.Current > 0 {
				fmt.Fprintf(a.out, "\rscanning... %s files", humanize.Comma(int64(p.Current)))
			}
		case "registering":
			fmt.Fprintf(a.out, "\rregistering... %s/%s", humanize.Comma(int64(p.Current)), humanize.Comma(int64(p.Total)))
		case "done":
			fmt.Fprintln(a.out)
		}
	})
	res, err := s.Scan(ctx, sources)
	if err != nil {
		return res, errmsg.Wrap(errmsg.OpLibraryScan, err)
	}
	return res, nil
}

func renderScanResult(a *appContext, res library.ScanResult) {
	if len(res.BySource) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(a.out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Source", "Files"})
		for _, src := range slices.Sorted(maps.Keys(res.BySource)) {
			t.AppendRow(table.Row{src, humanize.Comma(int64(res.BySource[src]))})
		}
		t.Render()
	}
	fmt.Fprintf(a.out, "%s audio files found, %s new\n",
		humanize.Comma(int64(res.Found)), humanize.Comma(int64(res.Added)))
}
