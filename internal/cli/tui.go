package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
	"github.com/alexanderramin/streakhq/internal/reconcile"
	"github.com/alexanderramin/streakhq/internal/service"
)

// focusInterval is how often the dashboard reconciles while open.
const focusInterval = time.Minute

type dashboardKeys struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Shield    key.Binding
	Post      key.Binding
	Reconcile key.Binding
	Quit      key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "check in")),
		Shield:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy shield")),
		Post:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "post XP")),
		Reconcile: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeys) bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Shield, k.Post, k.Reconcile, k.Quit}
}

// opDoneMsg carries the outcome of a Store call made from the dashboard.
type opDoneMsg struct {
	res ops.Result
	err error
}

type reconciledMsg struct {
	report reconcile.Report
	err    error
}

type focusTickMsg struct{}

// dashboardModel is the bubbletea Model behind `streakhq tui`.
type dashboardModel struct {
	store  *service.Store
	keys   dashboardKeys
	snap   domain.Snapshot
	cursor int
	status string
	isErr  bool
	width  int
}

func newDashboardModel(store *service.Store) dashboardModel {
	return dashboardModel{
		store: store,
		keys:  newDashboardKeys(),
		snap:  store.Snapshot(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return focusTick()
}

func focusTick() tea.Cmd {
	return tea.Tick(focusInterval, func(time.Time) tea.Msg { return focusTickMsg{} })
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case focusTickMsg:
		return m, tea.Batch(m.reconcileCmd(), focusTick())

	case opDoneMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.snap = msg.res.Snapshot
		m.setStatus(formatter.FormatResult(msg.res), false)
		return m, nil

	case reconciledMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.snap = m.store.Snapshot()
		if msg.report.Changed() {
			m.setStatus("Caught up with the calendar", false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Categories)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if c, ok := m.selected(); ok {
			return m, m.opCmd(func(ctx context.Context) (ops.Result, error) {
				return m.store.ToggleMiniTask(ctx, c.ID, "", "")
			})
		}
	case key.Matches(msg, m.keys.Shield):
		if c, ok := m.selected(); ok {
			return m, m.opCmd(func(ctx context.Context) (ops.Result, error) {
				return m.store.BuyShield(ctx, c.ID)
			})
		}
	case key.Matches(msg, m.keys.Post):
		return m, m.opCmd(m.store.PostXPToBank)
	case key.Matches(msg, m.keys.Reconcile):
		return m, m.reconcileCmd()
	}
	return m, nil
}

func (m *dashboardModel) setStatus(s string, isErr bool) {
	m.status = strings.TrimSpace(s)
	m.isErr = isErr
}

func (m dashboardModel) selected() (domain.CategoryDef, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Categories) {
		return domain.CategoryDef{}, false
	}
	return m.snap.Categories[m.cursor], true
}

func (m dashboardModel) opCmd(fn func(context.Context) (ops.Result, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := fn(context.Background())
		return opDoneMsg{res: res, err: err}
	}
}

func (m dashboardModel) reconcileCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		report, err := store.Reconcile(context.Background())
		return reconciledMsg{report: report, err: err}
	}
}

func (m dashboardModel) View() string {
	day := domain.Today(m.store.Now())
	var b strings.Builder

	b.WriteString(formatter.Header("streakhq · " + day))
	b.WriteString("\n\n")
	for i, c := range m.snap.Categories {
		pointer := "  "
		if i == m.cursor {
			pointer = formatter.StyleHeader.Render("▸ ")
		}
		mark := formatter.Dim("·")
		if ci, ok := m.snap.CheckIn(c.ID, day); ok {
			switch {
			case ci.MiniTaskDone:
				mark = formatter.StyleGreen.Render("✔")
			case ci.IsShield:
				mark = formatter.StyleBlue.Render("◆")
			}
		}
		fmt.Fprintf(&b, "%s%s %-20s %s  %s  %s\n",
			pointer, mark, c.Name,
			formatter.HistoryStrip(domain.History(m.snap, c.ID, day, 7)),
			formatter.Dim(fmt.Sprintf("streak %d", domain.StreakCount(m.snap, c.ID, day))),
			formatter.ShieldLabel(domain.ShieldCount(m.snap, c.ID)))
	}

	done := domain.CategoriesDoneToday(m.snap, day)
	fmt.Fprintf(&b, "\n%s %s   %s %s   %s %s\n",
		formatter.Dim("gate"), formatter.RenderGate(done, m.snap.Settings.SpendGateThreshold),
		formatter.Dim("pending"), formatter.XP(m.snap.PendingXP),
		formatter.Dim("balance"), formatter.Euro(domain.Balance(m.snap)))

	if m.status != "" {
		b.WriteString("\n")
		if m.isErr {
			b.WriteString(formatter.StyleRed.Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}

	help := make([]string, 0, len(m.keys.bindings()))
	for _, k := range m.keys.bindings() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(help, " · ")))
	return b.String()
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("the dashboard needs an interactive terminal")
			}
			p := tea.NewProgram(newDashboardModel(app.Store),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}
