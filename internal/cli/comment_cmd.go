package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cocoon/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCommentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Add and read item comments",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add ID TEXT...",
			Short: "Append a comment to an item",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				id, err := resolveItemID(ctx, app, args[0])
				if err != nil {
					return err
				}
				c, err := app.Comments.Add(ctx, id, app.userID(), strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Comment %s added\n", formatter.TruncID(c.ID))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list ID",
			Short: "Show an item's comments, oldest first",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				id, err := resolveItemID(ctx, app, args[0])
				if err != nil {
					return err
				}
				comments, err := app.Comments.List(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatComments(comments))
				return nil
			},
		},
	)

	return cmd
}

// newAuditCmd shows the change history of an item. Entries outlive the item,
// so a full id of a deleted item is accepted as is.
func newAuditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "audit ID",
		Short: "Show an item's audit log, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				id = strings.TrimSpace(args[0])
			}
			entries, err := app.Audit.List(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAuditLog(entries))
			return nil
		},
	}
}
