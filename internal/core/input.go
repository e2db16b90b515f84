package core

// Action represents a semantic game command, abstracted from physical key presses.
// Input bindings translate raw key events into actions; the engine only ever
// sees actions.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left arrow, A
	ActionMoveRight        // Right arrow, D
	ActionRotate           // Up arrow, W
	ActionDrop             // Down arrow, S - one soft-drop step
	ActionHold             // Space
	ActionPause            // P - toggles between pause and resume
	ActionResume           // explicit resume (menu)
	ActionNewGame          // N
	ActionContinue         // C - load the saved session
	ActionBack             // Esc, B - leave the game screen
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionRotate:
		return "Rotate"
	case ActionDrop:
		return "Drop"
	case ActionHold:
		return "Hold"
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	case ActionNewGame:
		return "NewGame"
	case ActionContinue:
		return "Continue"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

