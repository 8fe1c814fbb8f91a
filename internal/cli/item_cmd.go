package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cocoon/internal/cli/formatter"
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/alexanderramin/cocoon/internal/service"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items"},
		Short:   "Manage pipeline items",
	}

	cmd.AddCommand(
		newItemCreateCmd(app),
		newItemListCmd(app),
		newItemShowCmd(app),
		newItemUpdateCmd(app),
		newItemMoveCmd(app),
		newItemDeleteCmd(app),
	)

	return cmd
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func newItemCreateCmd(app *App) *cobra.Command {
	var d itemDraft
	var owner string
	var tags []string
	var stage domain.Stage

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new item (prompts for missing fields on a terminal)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() && (strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Problem) == "") {
				d.Tags = strings.Join(tags, ", ")
				if err := itemCreateForm(&d).Run(); err != nil {
					return err
				}
				tags = []string{d.Tags}
			}

			it := &domain.Item{
				Title:       d.Title,
				Status:      stage,
				OwnerID:     owner,
				Problem:     optionalText(d.Problem),
				UserContext: optionalText(d.UserContext),
				MinSolution: optionalText(d.MinSolution),
				KPIName:     optionalText(d.KPIName),
				Tags:        normalizeTags(tags),
			}
			if err := app.Items.Create(context.Background(), it, app.userID()); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCreated(it))
			return nil
		},
	}

	cmd.Flags().StringVar(&d.Title, "title", "", "Item title")
	cmd.Flags().StringVar(&d.Problem, "problem", "", "Problem statement")
	cmd.Flags().StringVar(&d.UserContext, "user-context", "", "Who has the problem and where")
	cmd.Flags().StringVar(&d.MinSolution, "solution", "", "Minimal solution")
	cmd.Flags().StringVar(&d.KPIName, "kpi", "", "KPI name")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner (defaults to the acting user)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable or comma-separated)")
	cmd.Flags().Var(newStageValue(&stage), "stage", "Initial stage (default new)")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var q repository.ItemQuery
	var oldestFirst bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if oldestFirst {
				q.Sort = repository.SortCreatedAsc
			}
			items, err := app.Items.List(context.Background(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemList(items))
			return nil
		},
	}

	cmd.Flags().Var(newStageValue(&q.Stage), "stage", "Only items in this stage")
	cmd.Flags().StringVar(&q.OwnerID, "owner", "", "Only items with this owner")
	cmd.Flags().BoolVar(&oldestFirst, "oldest-first", false, "Sort by creation time ascending")

	return cmd
}

func newItemShowCmd(app *App) *cobra.Command {
	var withComments bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show every field of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			it, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatItemDetail(it))
			if withComments {
				comments, err := app.Comments.List(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Header("Comments"))
				fmt.Fprint(out, formatter.FormatComments(comments))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withComments, "comments", false, "Include the comment thread")

	return cmd
}

// updateFlags holds the raw flag values of item update; only flags the user
// set become part of the patch.
type updateFlags struct {
	title, owner                                  string
	problem, userContext, minSolution             string
	currentSolution, resources                    string
	kpiName, kpiBaseline, kpiTarget, firstMeasure string
	risk, rbac, artefact                          string
	timeboxFrom, timeboxTo                        string
	stopReason                                    string
	pii, demo, measure, log                       bool
	stage                                         domain.Stage
	ryg                                           domain.RYG
	tags                                          []string
}

func (f *updateFlags) patch(cmd *cobra.Command) (domain.ItemPatch, error) {
	var p domain.ItemPatch
	changed := cmd.Flags().Changed

	text := map[string]struct {
		src string
		dst **string
	}{
		"title":            {f.title, &p.Title},
		"owner":            {f.owner, &p.OwnerID},
		"problem":          {f.problem, &p.Problem},
		"user-context":     {f.userContext, &p.UserContext},
		"solution":         {f.minSolution, &p.MinSolution},
		"current-solution": {f.currentSolution, &p.CurrentSolution},
		"resources":        {f.resources, &p.ResourceAssessment},
		"kpi":              {f.kpiName, &p.KPIName},
		"baseline":         {f.kpiBaseline, &p.KPIBaseline},
		"target":           {f.kpiTarget, &p.KPITarget},
		"risk":             {f.risk, &p.RiskNote},
		"rbac":             {f.rbac, &p.RBACNote},
		"artefact":         {f.artefact, &p.ArtefactURL},
		"stop-reason":      {f.stopReason, &p.StopReason},
	}
	for name, slot := range text {
		if changed(name) {
			v := slot.src
			*slot.dst = &v
		}
	}

	flags := map[string]struct {
		src bool
		dst **bool
	}{
		"pii":     {f.pii, &p.PIIFlag},
		"demo":    {f.demo, &p.GoodEnoughDemo},
		"measure": {f.measure, &p.GoodEnoughMeasure},
		"log":     {f.log, &p.GoodEnoughLog},
	}
	for name, slot := range flags {
		if changed(name) {
			v := slot.src
			*slot.dst = &v
		}
	}

	dates := map[string]struct {
		src string
		dst *domain.TimeField
	}{
		"first-measure": {f.firstMeasure, &p.FirstMeasureDue},
		"timebox-from":  {f.timeboxFrom, &p.TimeboxFrom},
		"timebox-to":    {f.timeboxTo, &p.TimeboxTo},
	}
	for name, slot := range dates {
		if !changed(name) {
			continue
		}
		t, err := parseOptionalDate(slot.src)
		if err != nil {
			return p, fmt.Errorf("--%s: %w", name, err)
		}
		if t == nil {
			*slot.dst = domain.ClearTime()
		} else {
			*slot.dst = domain.SetTime(*t)
		}
	}

	if changed("stage") {
		st := f.stage
		p.Status = &st
	}
	if changed("ryg") {
		r := f.ryg
		p.RYGStatus = &r
	}
	if changed("tags") {
		tags := normalizeTags(f.tags)
		p.Tags = &tags
	}
	return p, nil
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var f updateFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change item fields; an empty text value clears it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			patch, err := f.patch(cmd)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			updated, err := app.Items.Update(ctx, id, patch, app.userID())
			if err := reportAuditFailure(cmd, updated, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", formatter.Bold(updated.Title), formatter.TruncID(updated.ID))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "Title")
	fs.StringVar(&f.owner, "owner", "", "Owner")
	fs.StringVar(&f.problem, "problem", "", "Problem statement")
	fs.StringVar(&f.userContext, "user-context", "", "User context")
	fs.StringVar(&f.minSolution, "solution", "", "Minimal solution")
	fs.StringVar(&f.currentSolution, "current-solution", "", "Current solution")
	fs.StringVar(&f.resources, "resources", "", "Resource assessment")
	fs.StringVar(&f.kpiName, "kpi", "", "KPI name")
	fs.StringVar(&f.kpiBaseline, "baseline", "", "KPI baseline")
	fs.StringVar(&f.kpiTarget, "target", "", "KPI target")
	fs.StringVar(&f.firstMeasure, "first-measure", "", "First measurement date (YYYY-MM-DD, empty clears)")
	fs.StringVar(&f.risk, "risk", "", "Risk note")
	fs.BoolVar(&f.pii, "pii", false, "Handles personal data")
	fs.StringVar(&f.rbac, "rbac", "", "RBAC note")
	fs.StringVar(&f.artefact, "artefact", "", "Artefact URL")
	fs.StringVar(&f.timeboxFrom, "timebox-from", "", "Time-box start (YYYY-MM-DD, empty clears)")
	fs.StringVar(&f.timeboxTo, "timebox-to", "", "Time-box end (YYYY-MM-DD, empty clears)")
	fs.BoolVar(&f.demo, "demo", false, "Good enough: demo")
	fs.BoolVar(&f.measure, "measure", false, "Good enough: measurement")
	fs.BoolVar(&f.log, "log", false, "Good enough: log")
	fs.StringVar(&f.stopReason, "stop-reason", "", "Reason for stopping the item")
	fs.Var(newStageValue(&f.stage), "stage", "Stage (new|discovery|development|done)")
	fs.Var(&rygValue{ryg: &f.ryg, allowEmpty: true}, "ryg", "Traffic light (red|yellow|green, empty clears)")
	fs.StringSliceVar(&f.tags, "tags", nil, "Replace the tag set (comma-separated)")

	return cmd
}

// reportAuditFailure turns a committed change with a missing audit entry
// into a warning. Any other error is returned as is.
func reportAuditFailure(cmd *cobra.Command, updated *domain.Item, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, service.ErrAuditNotRecorded) && updated != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return nil
	}
	return err
}

func newItemMoveCmd(app *App) *cobra.Command {
	var next bool

	cmd := &cobra.Command{
		Use:   "move ID [STAGE]",
		Short: "Move an item to a stage, or to the next one with --next",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			current, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}

			var target domain.Stage
			switch {
			case next && len(args) == 2:
				return fmt.Errorf("pass either a stage or --next, not both")
			case next:
				st, ok := current.Status.Next()
				if !ok {
					return fmt.Errorf("%q is already in the last stage", current.Title)
				}
				target = st
			case len(args) == 2:
				if target, err = domain.ParseStage(args[1]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("a target stage or --next is required")
			}

			updated, err := app.Items.MoveStage(ctx, id, target, app.userID())
			if err := reportAuditFailure(cmd, updated, err); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMoved(updated, current.Status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "Advance to the following stage")

	return cmd
}

func newItemDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item and its comments; the audit log is kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			it, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				ok := false
				if err := confirmForm(fmt.Sprintf("Delete %q?", it.Title), &ok).Run(); err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Items.Delete(ctx, id, app.userID()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", formatter.Bold(it.Title), formatter.TruncID(it.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
