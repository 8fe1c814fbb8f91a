package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/cocoon/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func cocoonHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// itemDraft collects the create form's answers as strings.
type itemDraft struct {
	Title       string
	Problem     string
	UserContext string
	MinSolution string
	KPIName     string
	Tags        string
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// itemCreateForm asks for the required fields first, then the optional
// framing of the idea.
func itemCreateForm(d *itemDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Smarter ticket triage").
				Value(&d.Title).
				Validate(validateRequired("title")),
			huh.NewText().
				Title("Problem").
				Description("What hurts today, and for whom?").
				Value(&d.Problem).
				Validate(validateRequired("problem")),
		),
		huh.NewGroup(
			huh.NewInput().Title("User context").Value(&d.UserContext),
			huh.NewInput().Title("Minimal solution").Value(&d.MinSolution),
			huh.NewInput().Title("KPI").Placeholder("Time to assign").Value(&d.KPIName),
			huh.NewInput().Title("Tags").Placeholder("ai, support").Value(&d.Tags),
		),
	).WithTheme(cocoonHuhTheme()).WithShowHelp(false)
}

// confirmForm returns a themed yes/no prompt.
func confirmForm(title string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(ok),
		),
	).WithTheme(cocoonHuhTheme()).WithShowHelp(false)
}
