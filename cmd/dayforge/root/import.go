package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrzp/dayforge/internal/transfer"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the profile with a JSON backup",
		Long: `Import a previously exported backup file.

The file is validated and upgraded to the current schema before
anything is replaced; a malformed backup leaves the existing profile
untouched.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("backup file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout()
			defer cancel()

			p, err := transfer.Import(args[0])
			if err != nil {
				return err
			}

			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s.service.Replace(p)

			fmt.Fprintf(cmd.OutOrStdout(),
				"imported profile for %s (level %d, %d tasks)\n",
				p.UserName, p.Level, len(p.Tasks),
			)
			return nil
		},
	}

	return cmd
}
