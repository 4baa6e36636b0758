package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelNotes = iota
	panelTypes
	panelConfig
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	notes      []noteSnapshot
	typeCounts map[string]int

	// State.
	loading bool
	err     error
}

type noteSnapshot struct {
	title  string
	typ    string
	date   string
	status string
}

// notesLoadedMsg carries loaded data back to the model.
type notesLoadedMsg struct {
	notes      []noteSnapshot
	typeCounts map[string]int
	err        error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	statusNew      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusOther    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	configSetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	configMissing  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelNotes,
		loading:     true,
		typeCounts:  make(map[string]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadNotes
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadNotes
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.notes = msg.notes
		m.typeCounts = msg.typeCounts
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Distiller Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading notes...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	notesPanel := m.renderNotesPanel()
	typesPanel := m.renderTypesPanel()
	configPanel := m.renderConfigPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		notesPanel = m.applyPanelStyle(panelNotes, notesPanel, colWidth-4)
		typesPanel = m.applyPanelStyle(panelTypes, typesPanel, colWidth-4)
		configPanel = m.applyPanelStyle(panelConfig, configPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, notesPanel, typesPanel, configPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		notesPanel = m.applyPanelStyle(panelNotes, notesPanel, panelWidth)
		typesPanel = m.applyPanelStyle(panelTypes, typesPanel, panelWidth)
		configPanel = m.applyPanelStyle(panelConfig, configPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, notesPanel, typesPanel, configPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderNotesPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Recent Notes"))
	b.WriteString("\n")

	if len(m.notes) == 0 {
		b.WriteString("  No notes found.")
		return b.String()
	}

	for _, n := range m.notes {
		status := statusOther
		if n.status == "New" {
			status = statusNew
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", status.Render("["+n.status+"]"), truncate(n.title, 36)))
		b.WriteString(fmt.Sprintf("    %s · %s\n", n.typ, n.date))
	}

	return b.String()
}

func (m dashboardModel) renderTypesPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("By Type"))
	b.WriteString("\n")

	if len(m.typeCounts) == 0 {
		b.WriteString("  No notes found.")
		return b.String()
	}

	total := 0
	for typ, count := range m.typeCounts {
		b.WriteString(fmt.Sprintf("  %-26s %d\n", typ, count))
		total += count
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d", total))

	return b.String()
}

func (m dashboardModel) renderConfigPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Configuration"))
	b.WriteString("\n")

	entries := []struct {
		label string
		set   bool
	}{
		{"API key", Cfg.HasCredential()},
		{"Parent page ID", Cfg.ParentPageID != ""},
		{"Database ID", Cfg.DatabaseID != ""},
	}

	for _, e := range entries {
		mark := configMissing.Render("missing")
		if e.set {
			mark = configSetStyle.Render("set")
		}
		b.WriteString(fmt.Sprintf("  %-16s %s\n", e.label, mark))
	}

	return b.String()
}

func loadNotes() tea.Msg {
	result := notesLoadedMsg{
		typeCounts: make(map[string]int),
	}

	if Library == nil {
		result.err = fmt.Errorf("library not initialized")
		return result
	}

	notes, err := Library.Search(context.Background(), "", "", 20)
	if err != nil {
		result.err = fmt.Errorf("loading notes: %w", err)
		return result
	}

	result.notes = make([]noteSnapshot, 0, len(notes))
	for _, n := range notes {
		result.notes = append(result.notes, noteSnapshot{
			title:  n.Title,
			typ:    n.Type,
			date:   n.Date,
			status: n.Status,
		})
		result.typeCounts[n.Type]++
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for recent notes",
	Long: `Launch an interactive terminal dashboard showing the most recent
notes, counts by conversation type, and the resolved configuration.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !Cfg.CanSearch() {
			return fmt.Errorf("notes database not configured (set NOTION_API_KEY and NOTION_DATABASE_ID)")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
