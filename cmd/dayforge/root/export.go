package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrzp/dayforge/internal/transfer"
)

func newExportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the profile to a JSON backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout()
			defer cancel()

			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if dir == "" {
				dir = "."
			}

			path, err := transfer.Export(s.service.Profile(), dir, today())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "exported to", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default current)")
	return cmd
}
