package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrzp/dayforge/internal/insight"
	"github.com/hrzp/dayforge/internal/model"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progression, traits, and unlocked achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout()
			defer cancel()

			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := s.service.Profile()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s · level %d\n", p.UserName, p.Level)
			fmt.Fprintf(out, "XP:       %d / %d to next level\n", p.XP, p.Level*100)
			fmt.Fprintf(out, "Streak:   %d day(s)\n", p.Streak)
			fmt.Fprintf(out, "Lifetime: %d task(s) completed\n", p.Stats.TotalCompleted)
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Traits:")
			for _, t := range model.AllTraits {
				fmt.Fprintf(out, "  %-18s %3d\n", string(t), p.Trait(t))
			}
			fmt.Fprintln(out)

			if len(p.UnlockedAchievements) == 0 {
				fmt.Fprintln(out, "No achievements yet.")
				return nil
			}

			fmt.Fprintln(out, "Achievements:")
			for _, id := range p.UnlockedAchievements {
				if a := insight.ByID(id); a != nil {
					fmt.Fprintf(out, "  %s %s - %s\n", a.Icon, a.Name, a.Desc)
				}
			}
			return nil
		},
	}

	return cmd
}
