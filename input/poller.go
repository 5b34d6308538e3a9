package input

import "github.com/osusproperties/ignite-growth-uae-15668aa5/event"

// Poller turns polled cursor positions into pointer move/enter/leave events.
// Hosts without native enter/leave callbacks (ebiten) poll once per tick.
type Poller struct {
	cursor func() (int, int)
	bounds func() (int, int)
	bus    *event.Bus

	inside bool
	lastX  int
	lastY  int
}

// NewPoller builds a poller reading the cursor from cursor and the viewport
// size from bounds.
func NewPoller(bus *event.Bus, cursor, bounds func() (int, int)) *Poller {
	return &Poller{cursor: cursor, bounds: bounds, bus: bus}
}

// Poll samples the cursor once and emits whatever changed since the last poll.
func (p *Poller) Poll() {
	if p == nil || p.cursor == nil || p.bounds == nil || p.bus == nil {
		return
	}

	x, y := p.cursor()
	w, h := p.bounds()
	inside := w > 0 && h > 0 && x >= 0 && y >= 0 && x < w && y < h

	switch {
	case inside && !p.inside:
		p.bus.EmitPointerEnter()
		p.bus.EmitPointerMove(float64(x), float64(y))
	case inside && (x != p.lastX || y != p.lastY):
		p.bus.EmitPointerMove(float64(x), float64(y))
	case !inside && p.inside:
		p.bus.EmitPointerLeave()
	}

	p.inside = inside
	p.lastX, p.lastY = x, y
}
