package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/storage"
)

// Menu layout constants
const (
	menuChrome    = 8  // Rows used by title, status and help
	menuMinHeight = 3  // Minimum table body height
	nameColWidth  = 20 // Width of the world name column
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("198"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// MenuModel is the Bubble Tea model for the world picker.
type MenuModel struct {
	worlds   []WorldInfo
	table    table.Model
	help     help.Model
	keys     MenuKeyMap
	config   core.RuntimeConfig
	status   string // Shown above the help line, e.g. why the last run stopped
	quitting bool
	selected *WorldInfo
}

// NewMenuModel creates a world picker over the built-in and stored worlds.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) (MenuModel, error) {
	worlds, err := ListWorlds(store)
	if err != nil {
		return MenuModel{}, err
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := MenuModel{
		worlds: worlds,
		help:   h,
		keys:   DefaultMenuKeyMap(),
		config: cfg,
	}
	m.table = m.createTable()
	return m, nil
}

// createTable builds the world table with the scoreboard look.
func (m *MenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "World", Width: nameColWidth},
		{Title: "Source", Width: 9},
		{Title: "Levels", Width: 7},
		{Title: "Updated", Width: 16},
	}

	rows := make([]table.Row, 0, len(m.worlds))
	for _, w := range m.worlds {
		updated := "-"
		if !w.UpdatedAt.IsZero() {
			updated = w.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, table.Row{
			w.Name,
			string(w.Source),
			fmt.Sprintf("%d", w.Levels),
			updated,
		})
	}

	km := table.DefaultKeyMap()
	km.LineUp = m.keys.Up
	km.LineDown = m.keys.Down

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.config.ScreenH-menuChrome, menuMinHeight)),
		table.WithKeyMap(km),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.worlds) {
				selected := m.worlds[cursor]
				m.selected = &selected
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-menuChrome, menuMinHeight))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T I L E   P L A T F O R M E R"), m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// WithStatus returns the menu with a status message shown under the table.
func (m MenuModel) WithStatus(status string) MenuModel {
	m.status = status
	return m
}

// Selected returns the chosen world, or nil if none was chosen.
func (m MenuModel) Selected() *WorldInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu shows the world picker and returns the chosen world,
// or nil if the user quit.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (*WorldInfo, core.RuntimeConfig, error) {
	model, err := NewMenuModel(store, cfg)
	if err != nil {
		return nil, cfg, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return nil, cfg, nil
	}
	return m.Selected(), m.Config(), nil
}
