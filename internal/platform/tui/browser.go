package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reef-runner/internal/storage"
)

// QuestionLister reads stored questions by kind.
type QuestionLister interface {
	List(ctx context.Context, kind string) ([]storage.Question, error)
}

// BrowserKeyMap defines the key bindings for the question browser.
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextKind key.Binding
	PrevKind key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextKind, k.PrevKind, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextKind: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next kind"),
		),
		PrevKind: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev kind"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel lists the question bank one kind at a time.
type BrowserModel struct {
	bank      QuestionLister
	kinds     []string
	kind      int
	questions []storage.Question
	err       error
	table     table.Model
	help      help.Model
	keys      BrowserKeyMap
	width     int
	height    int
	quitting  bool
}

// NewBrowserModel creates a browser over bank.
func NewBrowserModel(bank QuestionLister, width, height int) BrowserModel {
	m := BrowserModel{
		bank:   bank,
		kinds:  storage.Kinds,
		keys:   DefaultBrowserKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable sizes the columns to the terminal.
func (m *BrowserModel) createTable() table.Model {
	promptW := max(20, m.width-40)
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Prompt", Width: promptW},
		{Title: "Answer", Width: 18},
		{Title: "Art", Width: 4},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(5, m.height-8)),
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

// load reads the current kind from the bank.
func (m *BrowserModel) load() {
	m.questions, m.err = m.bank.List(context.Background(), m.kinds[m.kind])
	m.updateRows()
}

func (m *BrowserModel) updateRows() {
	rows := make([]table.Row, len(m.questions))
	for i, q := range m.questions {
		art := ""
		if q.Art != "" {
			art = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", q.ID),
			strings.ReplaceAll(q.Prompt, "\n", " "),
			q.Choices[q.Answer],
			art,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextKind):
			m.kind = (m.kind + 1) % len(m.kinds)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.PrevKind):
			m.kind = (m.kind + len(m.kinds) - 1) % len(m.kinds)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("QUESTION BANK - %s (%d)", strings.ToUpper(m.kinds[m.kind]), len(m.questions))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	body := m.table.View()
	switch {
	case m.err != nil:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error())
	case len(m.questions) == 0:
		body = dimStyle.Italic(true).Padding(2, 4).Render("No questions of this kind.\nImport some with: reefrun questions import FILE")
	}
	b.WriteString(panelStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunBrowser runs the question browser until the user quits.
func RunBrowser(bank QuestionLister, width, height int) error {
	p := tea.NewProgram(NewBrowserModel(bank, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
