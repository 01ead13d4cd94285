package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the profile with the cloud copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout()
			defer cancel()

			// openSession already reconciles and pushes; all that is
			// left is the mailbox fetch and reporting.
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if s.cfg.Cloud.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "sync complete")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(),
					"cloud sync is disabled; profile saved locally")
			}

			if s.mailbox != nil {
				added, err := fetchMailboxRequests(ctx, s)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"%d new request(s) from mailbox\n", added)
			}

			return nil
		},
	}

	return cmd
}

// fetchMailboxRequests pulls flagged messages and merges them as
// requests, acknowledging each one it keeps.
func fetchMailboxRequests(ctx context.Context, s *session) (int, error) {
	candidates, err := s.mailbox.FetchRequests(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, req := range candidates {
		if s.service.AddExternalRequest(req) {
			added++
			if err := s.mailbox.Acknowledge(ctx, req.ID); err != nil {
				s.log.Warn("acknowledge failed", "id", req.ID, "err", err)
			}
		}
	}
	return added, nil
}
