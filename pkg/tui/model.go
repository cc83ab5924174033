package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toastline-dev/toastline/pkg/reactive"
	"github.com/toastline-dev/toastline/pkg/theme"
	"github.com/toastline-dev/toastline/pkg/toast"
	"github.com/toastline-dev/toastline/pkg/toaster"
)

// refreshMsg carries a fresh store snapshot into the bubbletea loop.
type refreshMsg struct {
	toasts []toast.Toast
}

// Model renders the live toast queues in the terminal. Key bindings raise
// demo toasts at each level, dismiss the newest dismissable toast, and clear
// the store, which makes the model double as an interactive smoke test for
// the whole engine.
type Model struct {
	toaster *toaster.Toaster
	theme   theme.Theme

	toasts []toast.Toast
	width  int
	height int
}

// NewModel creates a model over an existing Toaster.
func NewModel(t *toaster.Toaster, th theme.Theme) Model {
	return Model{
		toaster: t,
		theme:   th,
		toasts:  t.Store().All(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case refreshMsg:
		m.toasts = msg.toasts

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "i":
			m.toaster.Info("something happened")
		case "s":
			m.toaster.Success("operation completed")
		case "w":
			m.toaster.Warn("disk space is low")
		case "e":
			m.toaster.Error("operation failed")
		case "p":
			m.toaster.Toast(toast.New("pinned until cleared").
				WithNoExpiry().
				WithDismissable(false).
				WithPosition(toast.TopCenter))
		case "d":
			m.dismissNewest()
		case "c":
			m.toaster.Clear()
		}
	}

	return m, nil
}

// dismissNewest dismisses the most recently shown dismissable toast.
func (m Model) dismissNewest() {
	for i := len(m.toasts) - 1; i >= 0; i-- {
		if m.toasts[i].Dismissable {
			m.toaster.Dismiss(m.toasts[i].ID)
			return
		}
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Faint(true).Italic(true).Padding(1, 2)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("toastline"))
	b.WriteString("\n\n")

	if len(m.toasts) == 0 {
		b.WriteString(emptyStyle.Render("no active toasts"))
		b.WriteString("\n")
	}

	for _, t := range m.toasts {
		b.WriteString(m.card(t))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("i/s/w/e raise · p pin · d dismiss · c clear · q quit"))
	return b.String()
}

// card renders one toast with the theme's level colors.
func (m Model) card(t toast.Toast) string {
	style := m.theme.Level(t.Level)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(style.Border)).
		Foreground(lipgloss.Color(style.Text)).
		Padding(0, 1)

	label := fmt.Sprintf("[%s] %s", t.Level, t.Message)
	if !t.Expires() {
		label += " (sticky)"
	}
	if !t.Dismissable {
		label += " (locked)"
	}
	return card.Render(label)
}

// Run drives the model in an alt-screen bubbletea program, wired to the
// store through a reactive effect so the view refreshes on every change.
func Run(ctx context.Context, t *toaster.Toaster, th theme.Theme) error {
	p := tea.NewProgram(NewModel(t, th), tea.WithAltScreen(), tea.WithContext(ctx))

	owner := reactive.NewOwner(nil)
	reactive.WithOwner(owner, func() {
		reactive.NewEffect(func() reactive.Cleanup {
			// Tracked reads subscribe the effect to every queue.
			for _, pos := range toast.Positions {
				t.Store().Queue(pos).Get()
			}
			p.Send(refreshMsg{toasts: t.Store().All()})
			return nil
		})
	})
	defer owner.Dispose()

	_, err := p.Run()
	return err
}
