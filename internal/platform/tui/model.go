// Package tui provides the Bubble Tea front-end for the runner.
// It handles the terminal UI loop, input mapping, the quiz overlay and
// serving sessions over SSH.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/core"
	"github.com/vovakirdan/reef-runner/internal/games/runner"
	"github.com/vovakirdan/reef-runner/internal/registry"
)

// statusTicks is how long a status line stays in the footer.
const statusTicks = 120

// TickMsg drives one simulation step.
type TickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Options configures a game model.
type Options struct {
	Config  config.RunnerConfig
	Runtime core.RuntimeConfig
	Bank    runner.QuestionBank // May be nil: every quiz is arithmetic
	Logger  *log.Logger         // May be nil

	// Mode and Level skip the select screens when set.
	Mode  string
	Level config.Level

	SnapshotDir string
}

// Summary describes one finished run.
type Summary struct {
	RunID   string
	Mode    string
	Level   config.Level
	Scene   string
	Score   int
	Lives   int
	Ticks   int
	Jumps   int
	Quizzes int
	Correct int
	Hits    int
}

// Model is the Bubble Tea model driving one game session.
type Model struct {
	session *runner.Session
	screen  *core.Screen
	opts    Options
	keys    KeyMap
	help    help.Model
	bar     progress.Model
	sink    *LogSink
	logger  *log.Logger

	input     core.InputFrame
	state     core.GameState
	cursor    int
	width     int
	height    int
	status    string
	statusTTL int
	recorded  bool
	summaries []Summary
	quitting  bool
}

// NewModel creates a model with a fresh session.
func NewModel(opts Options) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = DefaultSnapshotDir()
	}

	session := runner.NewSession(opts.Config, opts.Runtime)
	if opts.Bank != nil {
		session.SetQuestionBank(opts.Bank)
	}
	sink := NewLogSink(opts.Logger)
	session.SetEventSink(sink)

	h := help.New()
	h.ShowAll = false

	m := Model{
		session: session,
		screen:  core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    h,
		bar:     progress.New(progress.WithSolidFill(bandColors[runner.BandOK]), progress.WithoutPercentage()),
		sink:    sink,
		logger:  opts.Logger,
		input:   core.NewInputFrame(),
		width:   opts.Runtime.ScreenW,
		height:  opts.Runtime.ScreenH,
	}
	m.preselect()
	m.state = session.State()
	return m
}

// preselect applies the mode and level given on the command line.
func (m *Model) preselect() {
	if m.opts.Mode == "" {
		return
	}
	if err := m.session.SelectMode(m.opts.Mode); err != nil {
		m.setStatus(err.Error())
		return
	}
	if m.opts.Level == "" {
		return
	}
	if err := m.session.SelectLevel(m.opts.Level); err != nil {
		m.setStatus(err.Error())
		return
	}
	m.start()
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input for the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c", msg.String() == "q":
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveSnapshot()
		return m, nil
	case msg.String() == "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.session.Phase() {
	case runner.PhaseSelect:
		m.handleModeMenu(m.keys.MenuAction(msg))
	case runner.PhaseLevel:
		m.handleLevelMenu(m.keys.MenuAction(msg))
	case runner.PhaseStart:
		switch m.keys.MenuAction(msg) {
		case core.ActionConfirm:
			m.start()
		case core.ActionBack:
			m.session.Reset()
			m.cursor = 0
		}
	case runner.PhasePlaying, runner.PhaseGameOver:
		action := m.keys.PlayAction(msg)
		if action == core.ActionBack && (m.state.Paused || m.state.GameOver) {
			m.session.Reset()
			m.cursor = 0
			m.state = m.session.State()
			return m, nil
		}
		if action != core.ActionNone {
			m.input.Set(action)
		}
	}
	return m, nil
}

func (m *Model) handleModeMenu(action core.Action) {
	modes := registry.List()
	switch action {
	case core.ActionUp:
		m.cursor = max(0, m.cursor-1)
	case core.ActionDown:
		m.cursor = min(len(modes)-1, m.cursor+1)
	case core.ActionConfirm:
		if len(modes) == 0 {
			return
		}
		if err := m.session.SelectMode(modes[m.cursor].ID); err != nil {
			m.setStatus(err.Error())
			return
		}
		m.cursor = 0
	}
}

func (m *Model) handleLevelMenu(action core.Action) {
	switch action {
	case core.ActionUp:
		m.cursor = max(0, m.cursor-1)
	case core.ActionDown:
		m.cursor = min(len(config.Levels)-1, m.cursor+1)
	case core.ActionBack:
		if err := m.session.Back(); err == nil {
			m.cursor = 0
		}
	case core.ActionConfirm:
		if err := m.session.SelectLevel(config.Levels[m.cursor]); err != nil {
			m.setStatus(err.Error())
			return
		}
		m.cursor = 0
	}
}

// start begins a run with a fresh run ID.
func (m *Model) start() {
	if err := m.session.Start(); err != nil {
		m.setStatus(err.Error())
		return
	}
	m.sink.NewRun()
	m.recorded = false
	m.state = m.session.State()
	if m.logger != nil {
		m.logger.Info("run started",
			"run", m.sink.RunID(),
			"mode", m.session.Mode().ID,
			"level", m.session.Level(),
			"seed", m.opts.Runtime.Seed,
		)
	}
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.statusTTL > 0 {
		m.statusTTL--
		if m.statusTTL == 0 {
			m.status = ""
		}
	}

	switch m.session.Phase() {
	case runner.PhasePlaying, runner.PhaseGameOver:
		result := m.session.Step(m.input)
		m.state = result.State
		if m.state.GameOver && !m.recorded {
			m.summaries = append(m.summaries, m.summary())
			m.recorded = true
		}
	default:
		m.state = m.session.State()
	}

	m.input.Clear()
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// summary captures the finished run.
func (m Model) summary() Summary {
	return Summary{
		RunID:   m.sink.RunID(),
		Mode:    m.session.Mode().Title,
		Level:   m.session.Level(),
		Scene:   m.session.Scene(),
		Score:   m.state.Score,
		Lives:   m.state.Lives,
		Ticks:   m.session.Ticks(),
		Jumps:   m.sink.Count(runner.EventJump),
		Quizzes: m.sink.Count(runner.EventQuizOpen),
		Correct: m.sink.Count(runner.EventQuizCorrect),
		Hits:    m.sink.Count(runner.EventHurt),
	}
}

// saveSnapshot dumps the current session state for bug reports.
func (m *Model) saveSnapshot() {
	path, err := SaveSnapshot(m.opts.SnapshotDir, m.sink.RunID(), m.session.Snapshot())
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("snapshot failed", "error", err)
		}
		m.setStatus("snapshot failed")
		return
	}
	if m.logger != nil {
		m.logger.Info("snapshot saved", "run", m.sink.RunID(), "path", path)
	}
	m.setStatus("snapshot saved")
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTTL = statusTicks
}

// View renders the current phase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.session.Phase() {
	case runner.PhaseSelect:
		modes := registry.List()
		items := make([]string, len(modes))
		for i, md := range modes {
			items[i] = fmt.Sprintf("%-12s %d scenes", md.Title, len(md.Scenes))
		}
		return m.withFooter(renderMenu("R E E F   R U N N E R", "Select a mode", items, m.cursor, m.width), MenuHelp{m.keys})

	case runner.PhaseLevel:
		items := make([]string, len(config.Levels))
		for i, l := range config.Levels {
			items[i] = fmt.Sprintf("%-8s %s", l.Title(), levelBlurb(m.opts.Config.Levels.For(l), l))
		}
		return m.withFooter(renderMenu(m.session.Mode().Title, "Select a level", items, m.cursor, m.width), MenuHelp{m.keys})

	case runner.PhaseStart:
		sub := fmt.Sprintf("%s on %s", m.session.Mode().Title, m.session.Level().Title())
		return m.withFooter(renderMenu("READY?", sub, []string{"Press ENTER to dive in"}, 0, m.width), MenuHelp{m.keys})
	}

	return m.viewRun()
}

// viewRun renders the field, with the quiz panel below it when one is open.
func (m Model) viewRun() string {
	panel := ""
	if v, ok := m.session.Quiz(); ok {
		panel = renderQuizPanel(v, m.bar, m.width)
	}

	fieldH := m.height - 1
	if panel != "" {
		fieldH = m.height - lipgloss.Height(panel)
	}
	m.screen.Resize(max(m.width, 20), max(fieldH, 6))
	m.session.Render(m.screen)

	if panel != "" {
		return RenderScreen(m.screen) + "\n" + panel
	}
	return m.withFooter(RenderScreen(m.screen), m.keys)
}

func (m Model) withFooter(body string, keys help.KeyMap) string {
	footer := m.help.View(keys)
	if m.status != "" {
		footer = titleStyle.Render(m.status) + "  " + footer
	}
	return body + "\n" + dimStyle.Render(footer)
}

// levelBlurb describes what a level changes.
func levelBlurb(lc config.LevelConfig, l config.Level) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("speed x%.1f", lc.SpeedScale))
	if l.GatesDamage() {
		parts = append(parts, fmt.Sprintf("quiz %ds", lc.QuizSeconds))
	} else {
		parts = append(parts, "no quizzes")
	}
	parts = append(parts, fmt.Sprintf("+1 life / %d pts", lc.BonusLifeEvery))
	return strings.Join(parts, ", ")
}

// Summaries returns every run finished in this model.
func (m Model) Summaries() []Summary {
	return m.summaries
}

// Run starts the Bubble Tea program and returns the finished runs.
func Run(opts Options) ([]Summary, error) {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(Model); ok {
		return m.Summaries(), nil
	}
	return nil, nil
}
