package event

import "testing"

func TestBusDispatchOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.OnPointerMove(func(x, y float64) { got = append(got, "first") })
	b.OnPointerMove(func(x, y float64) { got = append(got, "second") })
	b.OnPointerLeave(func() { got = append(got, "leave") })

	b.EmitPointerMove(1, 2)

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("unexpected dispatch order: %v", got)
	}
}

func TestBusRemove(t *testing.T) {
	cases := []struct {
		name        string
		removeTwice bool
	}{
		{"once", false},
		{"twice", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBus()
			calls := 0
			remove := b.OnResize(func(w, h int) { calls++ })
			keep := b.OnPointerEnter(func() {})
			defer keep()

			remove()
			if c.removeTwice {
				remove()
			}

			b.EmitResize(10, 10)
			if calls != 0 {
				t.Fatalf("removed listener was called %d times", calls)
			}
			if b.Listeners() != 1 {
				t.Fatalf("expected 1 listener left, got %d", b.Listeners())
			}
		})
	}
}

func TestBusListenerRemovesItselfDuringDispatch(t *testing.T) {
	b := NewBus()
	calls := 0
	var remove func()
	remove = b.OnPointerEnter(func() {
		calls++
		remove()
	})
	other := 0
	b.OnPointerEnter(func() { other++ })

	b.EmitPointerEnter()
	b.EmitPointerEnter()

	if calls != 1 {
		t.Fatalf("self-removing listener should fire once, fired %d", calls)
	}
	if other != 2 {
		t.Fatalf("second listener should fire twice, fired %d", other)
	}
}

func TestBusNilListenerIgnored(t *testing.T) {
	b := NewBus()
	remove := b.OnResize(nil)
	remove()
	if b.Listeners() != 0 {
		t.Fatalf("nil listener should not be registered")
	}
}
