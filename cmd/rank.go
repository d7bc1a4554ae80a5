package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/expertmaker/internal/rank"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show your belt, stripes, and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		st, err := svc.Rank(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Belt:      %s\n", st.Belt)
		fmt.Fprintf(w, "Stripes:   %d/%d\n", st.State.Stripes, st.Config.StripesPerBelt)
		fmt.Fprintf(w, "Points:    %d/%d (%d to next stripe)\n",
			st.State.Points, st.Config.PointsPerStripe, rank.PointsToNextStripe(st.State, st.Config))
		fmt.Fprintf(w, "Progress:  %d%%\n", st.Progress)
		fmt.Fprintf(w, "Rules:     pass at %d%% earns %d, otherwise %d\n",
			st.Config.PassScore, st.Config.PassPoints, st.Config.FailPoints)
		return nil
	},
}

var rankConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Change the rank rules (unset flags keep their current value)",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		st, err := svc.Rank(cmd.Context())
		if err != nil {
			return err
		}
		next := st.Config
		flags := []struct {
			name string
			dst  *int
		}{
			{"points-per-stripe", &next.PointsPerStripe},
			{"stripes-per-belt", &next.StripesPerBelt},
			{"pass-points", &next.PassPoints},
			{"fail-points", &next.FailPoints},
			{"pass-score", &next.PassScore},
		}
		for _, f := range flags {
			if cmd.Flags().Changed(f.name) {
				*f.dst, _ = cmd.Flags().GetInt(f.name)
			}
		}

		if err := svc.SetRankConfig(cmd.Context(), next); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rank rules: %d points/stripe, %d stripes/belt, pass %d%% → +%d, fail → +%d\n",
			next.PointsPerStripe, next.StripesPerBelt, next.PassScore, next.PassPoints, next.FailPoints)
		return nil
	},
}

func init() {
	d := rank.DefaultConfig()
	rankConfigCmd.Flags().Int("points-per-stripe", d.PointsPerStripe, "Points needed for one stripe")
	rankConfigCmd.Flags().Int("stripes-per-belt", d.StripesPerBelt, "Stripes needed for the next belt")
	rankConfigCmd.Flags().Int("pass-points", d.PassPoints, "Points awarded for a passed assessment")
	rankConfigCmd.Flags().Int("fail-points", d.FailPoints, "Points awarded for a failed assessment")
	rankConfigCmd.Flags().Int("pass-score", d.PassScore, "Minimum score (0-100) to pass")

	rankCmd.AddCommand(rankConfigCmd)
}
