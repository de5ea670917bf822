package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xtding233/keno-backend/internal/keno"
)

func newSimulateCmd() *cobra.Command {
	var (
		spots   int
		numbers []int
		trials  int
		seed    uint64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Monte Carlo run of the payout table for one selection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rng keno.RandomSource
			if seed != 0 {
				rng = keno.NewSeededRNG(seed)
			}
			st, err := keno.RunMonteCarlo(keno.StandardPayoutTable(), keno.SimParams{
				Spots:   spots,
				Numbers: numbers,
				Trials:  trials,
			}, rng)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), trials, st)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&spots, "spots", 5, "quick-pick this many spots (ignored with --numbers)")
	f.IntSliceVar(&numbers, "numbers", nil, "fixed selection, e.g. --numbers 7,14,21")
	f.IntVar(&trials, "trials", 100000, "rounds to play")
	f.Uint64Var(&seed, "seed", 0, "seed for a reproducible run; 0 uses crypto randomness")
	return cmd
}

func printStats(w io.Writer, trials int, st keno.Stats) {
	fmt.Fprintf(w, "rounds    %d\n", trials)
	fmt.Fprintf(w, "return    %.4f\n", st.Mean)
	fmt.Fprintf(w, "stddev    %.4f\n", st.StdDev)
	fmt.Fprintf(w, "hit rate  %.4f\n", st.HitRate)
	fmt.Fprintf(w, "p50/p90/p99  %.0f / %.0f / %.0f\n", st.P50, st.P90, st.P99)
	fmt.Fprintf(w, "max       %dx\n", st.Max)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "matches\trounds")
	for m, n := range st.Matches {
		fmt.Fprintf(tw, "%d\t%d\n", m, n)
	}
	_ = tw.Flush()
}

func newRTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rtp",
		Short: "Print the exact return to player per spot count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "spots\trtp\thit rate\ttop")
			for _, r := range keno.ReturnTable(keno.StandardPayoutTable()) {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%dx\n", r.Spots, r.RTP.StringFixed(6), r.HitRate.StringFixed(6), r.Top)
			}
			return tw.Flush()
		},
	}
}
