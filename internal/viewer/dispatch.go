package viewer

import "context"

// Dispatcher runs fn on the UI goroutine at some later point
type Dispatcher interface {
	Post(fn func())
}

// DispatcherFunc adapts a function, e.g. fyne.Do, to Dispatcher
type DispatcherFunc func(func())

// Post calls f(fn)
func (f DispatcherFunc) Post(fn func()) { f(fn) }

// Queue is a Dispatcher for frame loops: workers Post, the loop calls Drain once per frame.
type Queue struct {
	ch chan func()
}

// NewQueue creates a queue holding up to size pending calls before Post blocks
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan func(), size)}
}

// Post enqueues fn
func (q *Queue) Post(fn func()) {
	q.ch <- fn
}

// Drain runs every pending call without blocking and returns how many ran
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// Wait blocks until one call is pending, runs it, and reports whether it did
func (q *Queue) Wait(ctx context.Context) bool {
	select {
	case fn := <-q.ch:
		fn()
		return true
	case <-ctx.Done():
		return false
	}
}
