package widget

// State is the lifecycle position of a widget.
type State int

const (
	// Uninitialized widgets have not been attached to a page.
	Uninitialized State = iota
	// Loading widgets are rendered and waiting for the library. A widget whose
	// library failed to load stays here.
	Loading
	// Ready widgets own a bound number instance.
	Ready
	// Destroyed widgets were detached. The state is terminal.
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
