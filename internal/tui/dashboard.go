package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wattboxctl/wattboxctl/pkg/wattbox"
)

// pollInterval is how often the dashboard re-syncs outlet states from
// the device. The client's own debounce suppresses anything faster.
const pollInterval = 5 * time.Second

// Message types for async operations
type toggleDoneMsg struct {
	index int
	err   error
}

type refreshDoneMsg struct {
	err error
}

type tickMsg time.Time

// dashboardKeyMap defines key bindings for the dashboard
type dashboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Refresh, k.Quit},
	}
}

var defaultKeys = dashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "toggle outlet"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the outlet dashboard: a live list of the strip's outlets
// with cursor-driven toggling and periodic re-sync.
type Model struct {
	client   *wattbox.Client
	snapshot wattbox.Snapshot

	cursor int
	busy   bool // a toggle or refresh is in flight
	status string
	isErr  bool

	spinner spinner.Model
	help    help.Model
	keys    dashboardKeyMap

	width  int
	height int
}

// New creates a dashboard for an already-loaded client.
func New(client *wattbox.Client) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		client:   client,
		snapshot: client.Snapshot(),
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeys,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) toggleCmd(index int, turnOn bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		outlet := client.Outlet(index)
		if outlet == nil {
			return toggleDoneMsg{index: index, err: fmt.Errorf("no outlet %d", index)}
		}
		return toggleDoneMsg{index: index, err: outlet.SetState(turnOn)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return refreshDoneMsg{err: client.RefreshOutletStates()}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.snapshot.Outlets)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.busy || m.cursor >= len(m.snapshot.Outlets) {
				return m, nil
			}
			outlet := m.snapshot.Outlets[m.cursor]
			m.busy = true
			m.isErr = false
			verb := "on"
			if outlet.On {
				verb = "off"
			}
			m.status = fmt.Sprintf("Turning %s %s...", outlet.Name, verb)
			return m, m.toggleCmd(outlet.Index, !outlet.On)

		case key.Matches(msg, m.keys.Refresh):
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.isErr = false
			m.status = "Refreshing..."
			return m, m.refreshCmd()
		}
		return m, nil

	case toggleDoneMsg:
		m.busy = false
		m.snapshot = m.client.Snapshot()
		if msg.err != nil {
			m.isErr = true
			m.status = wattbox.ShortErrorMessage(msg.err)
		} else {
			m.isErr = false
			m.status = ""
		}
		return m, nil

	case refreshDoneMsg:
		m.busy = false
		m.snapshot = m.client.Snapshot()
		if msg.err != nil {
			m.isErr = true
			m.status = wattbox.ShortErrorMessage(msg.err)
		} else {
			m.isErr = false
			m.status = ""
		}
		return m, nil

	case tickMsg:
		if m.busy {
			return m, tickCmd()
		}
		return m, tea.Batch(m.refreshCmd(), tickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("WattBox Outlets"))
	b.WriteString("\n\n")

	info := m.snapshot.Info
	device := fmt.Sprintf("%s  %s  SN %s  %.1fV %.1fA %.1fW",
		info.Hostname, info.HardwareVersion, info.SerialNumber,
		info.Voltage, info.Current, info.Power)
	b.WriteString(DeviceStyle.Render(device))
	b.WriteString("\n\n")

	for i, outlet := range m.snapshot.Outlets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		state := OffStyle.Render("○ off")
		if outlet.On {
			state = OnStyle.Render("● on ")
		}

		line := fmt.Sprintf("%s%s  %s", cursor, state, outlet.Name)
		if i == m.cursor {
			line = SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	if m.status != "" {
		if m.isErr {
			b.WriteString(ErrorStyle.Render(m.status))
		} else {
			b.WriteString(StatusStyle.Render(m.status))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
