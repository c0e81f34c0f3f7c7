package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/triage/internal/cli/formatter"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// triageHuhTheme returns a huh theme matching the formatter palette.
func triageHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

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

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// projectFormValues collects project fields as strings so huh inputs can
// bind to them directly.
type projectFormValues struct {
	ShortID  string
	Title    string
	Client   string
	StatusID string
	Priority string
	Progress string
	Start    string
	Deadline string
}

// projectForm builds the interactive form used by "project add" when no
// title flag is given.
func projectForm(v *projectFormValues, statuses []*domain.ProjectStatus) *huh.Form {
	statusOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, s := range statuses {
		statusOptions = append(statusOptions, huh.NewOption(s.Name, s.ID))
	}

	priorityOptions := []huh.Option[string]{
		huh.NewOption("low", string(domain.PriorityLow)),
		huh.NewOption("medium", string(domain.PriorityMedium)),
		huh.NewOption("high", string(domain.PriorityHigh)),
		huh.NewOption("urgent", string(domain.PriorityUrgent)),
	}
	if v.Priority == "" {
		v.Priority = string(domain.PriorityMedium)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&v.Title).Validate(requiredText("title")),
			huh.NewInput().Title("Short ID").Placeholder("ERP01").Value(&v.ShortID).Validate(validateShortIDInput),
			huh.NewInput().Title("Client").Value(&v.Client),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(&v.StatusID),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions...).Value(&v.Priority),
			huh.NewInput().Title("Progress (%)").Placeholder("0").Value(&v.Progress).Validate(validateProgressInput),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start date (YYYY-MM-DD, blank for none)").Value(&v.Start).Validate(validateOptionalDate),
			huh.NewInput().Title("Deadline (YYYY-MM-DD, blank for none)").Value(&v.Deadline).Validate(validateOptionalDate),
		),
	).WithTheme(triageHuhTheme()).WithShowHelp(false)
}

// toProject converts the collected form values into a project.
func (v *projectFormValues) toProject() (*domain.Project, error) {
	progress, err := parseProgress(v.Progress)
	if err != nil {
		return nil, err
	}
	start, err := parseOptionalDate("start date", v.Start)
	if err != nil {
		return nil, err
	}
	deadline, err := parseOptionalDate("deadline", v.Deadline)
	if err != nil {
		return nil, err
	}
	return &domain.Project{
		ShortID:   v.ShortID,
		Title:     v.Title,
		Client:    v.Client,
		StatusID:  v.StatusID,
		Priority:  domain.Priority(v.Priority),
		Progress:  progress,
		StartDate: start,
		Deadline:  deadline,
	}, nil
}

func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(value),
		),
	).WithTheme(triageHuhTheme()).WithShowHelp(false)
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateShortIDInput(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	p := domain.Project{ShortID: strings.ToUpper(strings.TrimSpace(s))}
	return p.ValidateShortID()
}

func validateProgressInput(s string) error {
	_, err := parseProgress(s)
	return err
}

func parseProgress(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return 0, fmt.Errorf("progress must be a whole number between 0 and 100")
	}
	return n, nil
}
