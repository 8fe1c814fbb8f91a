package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/cocoon/internal/app"
	"github.com/alexanderramin/cocoon/internal/cli/formatter"
	"github.com/alexanderramin/cocoon/internal/metrics"
	"github.com/spf13/cobra"
)

func (a *App) weekly(ctx context.Context, locale string) (*app.WeeklyReportResponse, error) {
	now := a.now()
	if locale == "" {
		locale = a.locale()
	}
	return a.Reports.Weekly(ctx, app.WeeklyReportRequest{Now: &now, Locale: locale})
}

func (a *App) itemReport(ctx context.Context, itemID, locale string) (*app.ItemReportResponse, error) {
	now := a.now()
	if locale == "" {
		locale = a.locale()
	}
	return a.Reports.ItemReport(ctx, app.ItemReportRequest{ItemID: itemID, Now: &now, Locale: locale})
}

func newKPICmd(app *App) *cobra.Command {
	var promFile string

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Show this week's KPIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.weekly(context.Background(), "")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatKPIs(resp.KPIs, resp.StageCounts, resp.TopTags))

			if promFile != "" {
				gauges := metrics.NewKPIGauges()
				gauges.Set(resp.KPIs, resp.StageCounts)
				if err := gauges.WriteTextfile(promFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", promFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&promFile, "prom-file", "", "Also write the gauges as a Prometheus textfile")

	return cmd
}

func newReportCmd(app *App) *cobra.Command {
	var out, locale string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print or save the weekly SITREP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.weekly(context.Background(), locale)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
				return nil
			}
			if err := writeFile(out, resp.Text+"\n"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&locale, "locale", "", "Report language (nb|en); defaults to COCOON_LOCALE")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the report to this file")

	cmd.AddCommand(newReportItemCmd(app, &locale))

	return cmd
}

func newReportItemCmd(app *App, locale *string) *cobra.Command {
	var onePager, raw bool
	var saveDir string

	cmd := &cobra.Command{
		Use:   "item ID",
		Short: "Print an item summary, or its one-pager with --one-pager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.itemReport(ctx, id, *locale)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if saveDir != "" {
				path := filepath.Join(saveDir, resp.Filename)
				if err := writeFile(path, resp.OnePager+"\n"); err != nil {
					return err
				}
				fmt.Fprintf(w, "Wrote %s\n", path)
				return nil
			}
			if !onePager {
				fmt.Fprintln(w, resp.Summary)
				return nil
			}
			if raw || !app.interactive() {
				fmt.Fprintln(w, resp.OnePager)
				return nil
			}
			rendered, err := formatter.RenderMarkdown(resp.OnePager, 80)
			if err != nil {
				return fmt.Errorf("rendering one-pager: %w", err)
			}
			fmt.Fprint(w, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&onePager, "one-pager", false, "Print the markdown one-pager instead of the summary")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the one-pager markdown without terminal rendering")
	cmd.Flags().StringVar(&saveDir, "save", "", "Write the one-pager into this directory under its suggested file name")

	return cmd
}

// writeFile creates the parent directory when needed.
func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
