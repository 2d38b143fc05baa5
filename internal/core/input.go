package core

// Intent represents a semantic player command, abstracted from physical key
// presses. The TUI, the SSH server and the headless runner all produce
// intents; the session consumes them without knowing the source.
type Intent int

const (
	IntentNone    Intent = iota
	IntentToggle         // Space, P - start or pause the clock
	IntentStep           // N - advance exactly one day while paused
	IntentFaster         // + - double the speed multiplier
	IntentSlower         // - - halve the speed multiplier
	IntentSave           // S - manual snapshot
	IntentAction         // 1-4 - invoke the action named in Input.Action
	IntentConfirm        // Enter - confirm selection in menu
	IntentBack           // Escape - back to the title menu
	IntentQuit           // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentToggle:
		return "Toggle"
	case IntentStep:
		return "Step"
	case IntentFaster:
		return "Faster"
	case IntentSlower:
		return "Slower"
	case IntentSave:
		return "Save"
	case IntentAction:
		return "Action"
	case IntentConfirm:
		return "Confirm"
	case IntentBack:
		return "Back"
	case IntentQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is a single player command. Action carries the action identifier
// when Intent is IntentAction and is empty otherwise.
type Input struct {
	Intent Intent
	Action string
}

// ActionInput builds an IntentAction input for the given action identifier.
func ActionInput(action string) Input {
	return Input{Intent: IntentAction, Action: action}
}

// InputFrame collects the commands received between two ticks. Order is
// preserved because actions spend cash and must resolve in arrival order.
type InputFrame struct {
	Inputs []Input
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends an input to the frame.
func (f *InputFrame) Push(in Input) {
	f.Inputs = append(f.Inputs, in)
}

// Has returns true if an input with the given intent was queued this frame.
func (f InputFrame) Has(i Intent) bool {
	for _, in := range f.Inputs {
		if in.Intent == i {
			return true
		}
	}
	return false
}

// Len returns the number of queued inputs.
func (f InputFrame) Len() int {
	return len(f.Inputs)
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.Inputs = f.Inputs[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Inputs: make([]Input, len(f.Inputs))}
	copy(clone.Inputs, f.Inputs)
	return clone
}
