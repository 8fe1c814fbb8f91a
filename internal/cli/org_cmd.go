package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cocoon/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newOrgCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Browse and edit the org chart",
	}

	cmd.AddCommand(
		newOrgTreeCmd(app),
		newOrgMembersCmd(app),
		newOrgAssignCmd(app),
		newOrgUnassignCmd(app),
		newOrgAddNodeCmd(app),
		newOrgResetCmd(app),
		newOrgImportCmd(app),
	)

	return cmd
}

// seeded loads the default seed into an empty store before the first read
// or edit.
func seeded(ctx context.Context, app *App) error {
	_, err := app.Org.EnsureSeeded(ctx)
	return err
}

func newOrgTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the org chart as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := seeded(ctx, app); err != nil {
				return err
			}
			view, err := app.Org.View(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOrgTree(view))
			return nil
		},
	}
}

func newOrgMembersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List team members and whether they hold a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := seeded(ctx, app); err != nil {
				return err
			}
			view, err := app.Org.View(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMembers(view))
			return nil
		},
	}
}

func newOrgAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign NODE MEMBER",
		Short: "Place a member on a role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := seeded(ctx, app); err != nil {
				return err
			}
			a, created, err := app.Org.Assign(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if a.ID == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing assigned: %s or %s is not in the chart\n", args[0], args[1])
				return nil
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already assigned to %s\n", args[1], args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s\n", args[1], args[0])
			return nil
		},
	}
}

func newOrgUnassignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign NODE MEMBER",
		Short: "Remove a member from a role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := seeded(ctx, app); err != nil {
				return err
			}
			removed, err := app.Org.Unassign(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if removed == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s was not assigned to %s\n", args[1], args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unassigned %s from %s\n", args[1], args[0])
			return nil
		},
	}
}

func newOrgAddNodeCmd(app *App) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add-node",
		Short: "Add an empty role, as a root or under --parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := seeded(ctx, app); err != nil {
				return err
			}
			var parentID *string
			if cmd.Flags().Changed("parent") {
				parentID = &parent
			}
			n, err := app.Org.AddNode(ctx, parentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s at level %d\n", formatter.Bold(n.Title), formatter.Dim(n.ID), n.Level)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent role ID")

	return cmd
}

func newOrgResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore roles and assignments to the seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && app.interactive() {
				ok := false
				if err := confirmForm("Replace every role and assignment with the seed?", &ok).Run(); err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			res, err := app.Org.Reset(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReset("Reset", *res))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newOrgImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace roles and assignments with a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Org.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReset("Imported", *res))
			return nil
		},
	}
}
