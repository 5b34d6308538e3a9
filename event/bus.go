package event

// Kind identifies a host event type.
type Kind string

const (
	Resize       Kind = "resize"
	PointerMove  Kind = "pointer_move"
	PointerEnter Kind = "pointer_enter"
	PointerLeave Kind = "pointer_leave"
)

type listener struct {
	id       uint64
	kind     Kind
	resize   func(w, h int)
	move     func(x, y float64)
	presence func()
}

// Bus dispatches viewport and pointer events to registered listeners.
// Emission is synchronous and runs listeners in registration order.
type Bus struct {
	nextID    uint64
	listeners []listener
}

func NewBus() *Bus {
	return &Bus{}
}

// OnResize registers fn for viewport resizes. The returned func removes it.
func (b *Bus) OnResize(fn func(w, h int)) func() {
	return b.add(listener{kind: Resize, resize: fn})
}

func (b *Bus) OnPointerMove(fn func(x, y float64)) func() {
	return b.add(listener{kind: PointerMove, move: fn})
}

func (b *Bus) OnPointerEnter(fn func()) func() {
	return b.add(listener{kind: PointerEnter, presence: fn})
}

func (b *Bus) OnPointerLeave(fn func()) func() {
	return b.add(listener{kind: PointerLeave, presence: fn})
}

func (b *Bus) EmitResize(w, h int) {
	for _, l := range b.snapshot(Resize) {
		l.resize(w, h)
	}
}

func (b *Bus) EmitPointerMove(x, y float64) {
	for _, l := range b.snapshot(PointerMove) {
		l.move(x, y)
	}
}

func (b *Bus) EmitPointerEnter() {
	for _, l := range b.snapshot(PointerEnter) {
		l.presence()
	}
}

func (b *Bus) EmitPointerLeave() {
	for _, l := range b.snapshot(PointerLeave) {
		l.presence()
	}
}

// Listeners reports how many listeners are registered across all kinds.
func (b *Bus) Listeners() int {
	if b == nil {
		return 0
	}
	return len(b.listeners)
}

func (b *Bus) add(l listener) func() {
	if b == nil || (l.resize == nil && l.move == nil && l.presence == nil) {
		return func() {}
	}
	b.nextID++
	l.id = b.nextID
	b.listeners = append(b.listeners, l)

	id := l.id
	return func() { b.remove(id) }
}

func (b *Bus) remove(id uint64) {
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// snapshot copies the matching listeners so a listener may remove itself
// (or others) while the event is being dispatched.
func (b *Bus) snapshot(kind Kind) []listener {
	if b == nil || len(b.listeners) == 0 {
		return nil
	}
	out := make([]listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		if l.kind == kind {
			out = append(out, l)
		}
	}
	return out
}
