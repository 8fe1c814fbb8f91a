package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/cocoon/internal/board"
	"github.com/alexanderramin/cocoon/internal/cli/formatter"
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
	"github.com/alexanderramin/cocoon/internal/repository"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var f board.Filter
	var demo, measure, logged triBool
	var interactive bool
	var width int

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the pipeline as one column per stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.HasDemo, f.HasMeasure, f.HasLog = demo.value, measure.value, logged.value

			if interactive {
				m := newBoardModel(app, f)
				_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
				return err
			}

			items, err := app.Items.List(context.Background(), repository.ItemQuery{})
			if err != nil {
				return err
			}
			renderBoard(cmd.OutOrStdout(), items, f, app.now(), width)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&f.ThisWeekOnly, "this-week", false, "Hide New items created before this ISO week")
	fs.StringVar(&f.Owner, "owner", "", "Only items with this owner")
	fs.Var(&rygValue{ryg: &f.RYG}, "ryg", "Only items with this traffic light (red|yellow|green)")
	fs.StringVar(&f.Tag, "tag", "", "Only items carrying this tag")
	triBoolVar(fs, &demo, "demo", "Filter on the good-enough demo flag")
	triBoolVar(fs, &measure, "measure", "Filter on the good-enough measurement flag")
	triBoolVar(fs, &logged, "log", "Filter on the good-enough log flag")
	fs.StringVar(&f.Search, "search", "", "Case-insensitive match on title or problem")
	fs.BoolVarP(&interactive, "interactive", "i", false, "Open the board as a navigable terminal UI")
	fs.IntVar(&width, "width", formatter.DefaultColumnWidth, "Column width")

	return cmd
}

// renderBoard prints the KPI bar, the active filter, the four columns and
// the owners and tags available for filtering.
func renderBoard(w io.Writer, items []*domain.Item, f board.Filter, now time.Time, width int) {
	fmt.Fprintln(w, formatter.FormatKPIBar(kpi.Calculate(items, now)))
	fmt.Fprintln(w, formatter.FormatFilter(f))
	fmt.Fprintln(w, formatter.FormatBoard(board.Columns(items, f, now), now, width, formatter.NoCursor))

	owners, tags := board.AvailableOwners(items), board.AvailableTags(items)
	if len(owners) > 0 {
		fmt.Fprintln(w, formatter.Dim("owners: "+strings.Join(owners, ", ")))
	}
	if len(tags) > 0 {
		fmt.Fprintln(w, formatter.Dim("tags: "+strings.Join(tags, ", ")))
	}
}
