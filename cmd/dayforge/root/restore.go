package root

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hrzp/dayforge/internal/migrate"
	"github.com/hrzp/dayforge/internal/store"
)

func newRestoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Recover the profile from the backup snapshot",
		Long: `Replace the primary snapshot with the backup copy.

Every save writes a second copy of the profile under a backup key.
Startup never reads it; this command is the only path that does.
Requires --yes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to restore without --yes")
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

			payload, err := st.LoadBackup(ctx)
			if errors.Is(err, store.ErrNotFound) {
				return errors.New("no backup snapshot to restore")
			}
			if err != nil {
				return err
			}

			p, err := migrate.Apply(payload)
			if err != nil {
				return fmt.Errorf("backup snapshot unreadable: %w", err)
			}

			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := st.Save(ctx, data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"restored profile for %s (level %d, %d tasks)\n",
				p.UserName, p.Level, len(p.Tasks),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the restore")
	return cmd
}
