package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage task list templates",
		Long: `Save the current task list as a named template and restock a
fresh day from it. Applying a template replaces the task list; every
task comes back uncompleted with new ids.`,
	}

	cmd.AddCommand(
		newTemplateListCmd(),
		newTemplateSaveCmd(),
		newTemplateApplyCmd(),
		newTemplateDeleteCmd(),
	)
	return cmd
}

func newTemplateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout()
			defer cancel()

			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			templates := s.service.Profile().Templates
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no templates saved")
				return nil
			}
			for _, tpl := range templates {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d task(s), saved %s\n",
					tpl.Name, len(tpl.Tasks), tpl.CreatedAt)
			}
			return nil
		},
	}
}

func newTemplateSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current task list under a name",
		Args:  requireName,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout()
			defer cancel()

			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !s.service.SaveTemplate(args[0]) {
				return errors.New("nothing to save: the task list is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "template %q saved\n", args[0])
			return nil
		},
	}
}

func newTemplateApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <name>",
		Short: "Replace the task list with a template",
		Args:  requireName,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout()
			defer cancel()

			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !s.service.ApplyTemplate(args[0]) {
				return fmt.Errorf("no template named %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "template %q applied\n", args[0])
			return nil
		},
	}
}

func newTemplateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a template",
		Args:  requireName,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout()
			defer cancel()

			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s.service.DeleteTemplate(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "template %q deleted\n", args[0])
			return nil
		},
	}
}

func requireName(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("template name is required")
	}
	return nil
}
