package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reef-runner/internal/core"
)

// KeyMap defines the key bindings of the game screen.
// It centralizes bindings so the help footer and input mapping agree.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Jump     key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Answers  [4]key.Binding
	Snapshot key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Pause, k.Answers[0], k.Snapshot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Confirm, k.Back},
		{k.Jump, k.Pause, k.Restart},
		{k.Answers[0], k.Snapshot, k.Quit},
	}
}

// MenuHelp is the help view used on the select screens.
type MenuHelp struct{ keys KeyMap }

// ShortHelp returns the menu bindings.
func (h MenuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Confirm, h.keys.Back, h.keys.Quit}
}

// FullHelp returns the menu bindings.
func (h MenuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/w", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "move down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "snapshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	keys := []string{"1", "2", "3", "4"}
	for i, k := range keys {
		km.Answers[i] = key.NewBinding(key.WithKeys(k))
	}
	km.Answers[0].SetHelp("1-4", "answer")
	return km
}

// PlayAction translates a key message to an in-run action.
// Returns ActionNone for keys that have no meaning during a run.
func (k KeyMap) PlayAction(msg tea.KeyMsg) core.Action {
	for i, b := range k.Answers {
		if key.Matches(msg, b) {
			return core.AnswerActions[i]
		}
	}
	switch {
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MenuAction translates a key message to a select screen action.
func (k KeyMap) MenuAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Confirm), msg.String() == " ":
		return core.ActionConfirm
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}
