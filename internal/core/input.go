package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move menu cursor up
	ActionDown           // S, Down arrow - move menu cursor down
	ActionJump           // Space - jump (double/triple jump in the air)
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to previous menu
	ActionRestart        // R key - return to mode select after game over
	ActionQuit           // Q, Ctrl+C - exit session
	ActionPause          // P - pause/unpause run
	ActionAnswer1        // 1 - pick first quiz choice
	ActionAnswer2        // 2 - pick second quiz choice
	ActionAnswer3        // 3 - pick third quiz choice
	ActionAnswer4        // 4 - pick fourth quiz choice
)

// AnswerActions lists the quiz answer actions in choice order.
var AnswerActions = [...]Action{ActionAnswer1, ActionAnswer2, ActionAnswer3, ActionAnswer4}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionAnswer1, ActionAnswer2, ActionAnswer3, ActionAnswer4:
		return "Answer"
	default:
		return "Unknown"
	}
}

// AnswerIndex returns the zero-based quiz choice for an answer action.
func (a Action) AnswerIndex() (int, bool) {
	for i, ans := range AnswerActions {
		if a == ans {
			return i, true
		}
	}
	return 0, false
}

// InputFrame represents the player's input during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
