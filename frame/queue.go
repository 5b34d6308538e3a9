package frame

// Handle identifies a requested frame callback. The zero Handle is never issued.
type Handle uint64

// Scheduler is the "next display refresh" primitive the renderer drives its
// loop with.
type Scheduler interface {
	Request(fn func()) Handle
	Cancel(h Handle)
}

type request struct {
	handle Handle
	fn     func()
}

// Queue is a cooperative Scheduler. The host calls Flush once per display
// refresh; callbacks requested during a flush run on the following one.
type Queue struct {
	next    Handle
	pending []request
	batch   []request
	frames  uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Request(fn func()) Handle {
	if q == nil || fn == nil {
		return 0
	}
	q.next++
	q.pending = append(q.pending, request{handle: q.next, fn: fn})
	return q.next
}

// Cancel drops a pending callback. Unknown, fired and zero handles are ignored.
func (q *Queue) Cancel(h Handle) {
	if q == nil || h == 0 {
		return
	}
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// Cancelling a sibling from inside a running flush.
	for i := range q.batch {
		if q.batch[i].handle == h {
			q.batch[i].fn = nil
			return
		}
	}
}

// Flush runs the callbacks that were pending when it was called, in request order.
func (q *Queue) Flush() {
	if q == nil {
		return
	}
	q.frames++
	if len(q.pending) == 0 {
		return
	}

	q.batch, q.pending = q.pending, nil
	for i := range q.batch {
		if fn := q.batch[i].fn; fn != nil {
			q.batch[i].fn = nil
			fn()
		}
	}
	q.batch = nil
}

// Pending reports how many callbacks are waiting for the next flush.
func (q *Queue) Pending() int {
	if q == nil {
		return 0
	}
	return len(q.pending)
}

// Frames reports how many times Flush has run.
func (q *Queue) Frames() uint64 {
	if q == nil {
		return 0
	}
	return q.frames
}
