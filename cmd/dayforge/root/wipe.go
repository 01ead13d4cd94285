package root

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hrzp/dayforge/internal/store"
)

func newWipeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all local snapshots",
		Long: `Delete the local profile snapshots, primary and backup.

The cloud copy, if any, is not touched; the next start will pull it
back down. Requires --yes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to wipe without --yes")
			}

			ctx, cancel := withTimeout()
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, err := store.Open(filepath.Join(cfg.DataDir, "dayforge.db"))
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Wipe(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "local snapshots deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
