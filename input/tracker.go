package input

// Idle is the snapshot before any pointer interaction. The position sits far
// outside any drawable area so nothing spawns or glows near the origin.
var Idle = State{X: -1000, Y: -1000}

// State is the pointer snapshot read by the renderer once per frame.
type State struct {
	X, Y   float64
	Active bool
}

// Tracker holds the current pointer position and whether the pointer is over
// the viewport. Event handlers write, the renderer reads.
type Tracker struct {
	state State
}

func NewTracker() *Tracker {
	return &Tracker{state: Idle}
}

// Move records a pointer move and marks the pointer active.
func (t *Tracker) Move(x, y float64) {
	if t == nil {
		return
	}
	t.state = State{X: x, Y: y, Active: true}
}

// Enter marks the pointer active without changing its position.
func (t *Tracker) Enter() {
	if t == nil {
		return
	}
	t.state.Active = true
}

// Leave marks the pointer inactive. The last position is kept.
func (t *Tracker) Leave() {
	if t == nil {
		return
	}
	t.state.Active = false
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	if t == nil {
		return Idle
	}
	return t.state
}
